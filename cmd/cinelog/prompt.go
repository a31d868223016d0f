package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"cinelog/internal/catalog"
	"cinelog/internal/tmdb"
	"cinelog/internal/workflow"
)

// terminalPrompter drives the add and edit workflows over the command's
// stdin/stdout. EOF on any prompt dismisses it.
type terminalPrompter struct {
	in  *bufio.Reader
	out io.Writer
}

var _ workflow.Prompter = (*terminalPrompter)(nil)

func newTerminalPrompter(in io.Reader, out io.Writer) *terminalPrompter {
	return &terminalPrompter{in: bufio.NewReader(in), out: out}
}

func (p *terminalPrompter) Credential(context.Context) (string, bool, error) {
	fmt.Fprintln(p.out, "No TMDB API key is configured. Create one at https://www.themoviedb.org/settings/api.")
	fmt.Fprint(p.out, "TMDB API key: ")
	return p.readLine()
}

func (p *terminalPrompter) Query(context.Context) (string, bool, error) {
	fmt.Fprint(p.out, "Movie title to search for: ")
	return p.readLine()
}

func (p *terminalPrompter) Pick(_ context.Context, candidates []tmdb.Candidate) (tmdb.Candidate, bool, error) {
	fmt.Fprintln(p.out, renderCandidateTable(candidates))
	for {
		fmt.Fprintf(p.out, "Select 1-%d (blank to cancel): ", len(candidates))
		line, ok, err := p.readLine()
		if err != nil || !ok {
			return tmdb.Candidate{}, false, err
		}
		if line == "" {
			return tmdb.Candidate{}, false, nil
		}
		index, err := strconv.Atoi(line)
		if err != nil || index < 1 || index > len(candidates) {
			fmt.Fprintf(p.out, "Enter a number between 1 and %d.\n", len(candidates))
			continue
		}
		return candidates[index-1], true, nil
	}
}

func (p *terminalPrompter) EditReview(_ context.Context, movie *catalog.Movie) (float64, string, bool, error) {
	for {
		fmt.Fprintf(p.out, "Rating for %q out of 10 (blank to skip): ", movie.Title)
		line, ok, err := p.readLine()
		if err != nil || !ok {
			return 0, "", false, err
		}
		if line == "" {
			return 0, "", false, nil
		}
		rating, parseErr := strconv.ParseFloat(line, 64)
		if parseErr != nil {
			fmt.Fprintln(p.out, "Enter a number, for example 7.5.")
			continue
		}
		fmt.Fprint(p.out, "Review: ")
		review, ok, err := p.readLine()
		if err != nil || !ok {
			return 0, "", false, err
		}
		return rating, review, true, nil
	}
}

func (p *terminalPrompter) Notify(message string) {
	fmt.Fprintln(p.out, message)
}

// Confirm asks a yes/no question and defaults to no.
func (p *terminalPrompter) Confirm(question string) bool {
	fmt.Fprintf(p.out, "%s [y/N]: ", question)
	line, ok, err := p.readLine()
	if err != nil || !ok {
		return false
	}
	switch strings.ToLower(line) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

func (p *terminalPrompter) readLine() (string, bool, error) {
	line, err := p.in.ReadString('\n')
	if err != nil {
		if err == io.EOF {
			line = strings.TrimSpace(line)
			return line, line != "", nil
		}
		return "", false, err
	}
	return strings.TrimSpace(line), true, nil
}
