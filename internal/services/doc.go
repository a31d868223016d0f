// Package services defines the shared error taxonomy for cinelog operations.
//
// Every failure a command can surface is tagged with one of the exported
// sentinel errors so the CLI boundary can classify it: recoverable lookup
// failures, normal negative results such as a duplicate title, input
// validation rejections, and cosmetic poster fetch problems.
package services
