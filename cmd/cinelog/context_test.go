package main

import (
	"errors"
	"testing"

	"cinelog/internal/services"
	"cinelog/internal/testsupport"
)

func TestLookupFactoryRequiresCredential(t *testing.T) {
	env := setupCLIEnv(t, testsupport.WithTMDBKey(""))

	configFlag := env.configPath
	ctx := newCommandContext(&configFlag)
	if _, err := ctx.ensureConfig(); err != nil {
		t.Fatalf("ensureConfig: %v", err)
	}

	_, err := ctx.lookupFactory()()
	if err == nil {
		t.Fatal("expected an error without a configured key")
	}
	if !errors.Is(err, services.ErrCredentialMissing) {
		t.Fatalf("expected ErrCredentialMissing, got %v", err)
	}
}

func TestLookupFactoryBuildsClientWithCredential(t *testing.T) {
	env := setupCLIEnv(t)

	configFlag := env.configPath
	ctx := newCommandContext(&configFlag)
	client, err := ctx.lookupFactory()()
	if err != nil {
		t.Fatalf("lookupFactory: %v", err)
	}
	if client == nil {
		t.Fatal("expected a client")
	}
}
