package project

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/conneroisu/starter/internal/errors"
	"github.com/conneroisu/starter/internal/validation"
)

// Source produces the Request for one run.
type Source interface {
	Request(ctx context.Context) (Request, error)
}

// ArgumentSource builds a request from command-line values.
type ArgumentSource struct {
	Name        string
	Description string
	SkipGit     bool
	DryRun      bool
}

// Request validates the name and returns the request.
func (s ArgumentSource) Request(ctx context.Context) (Request, error) {
	if err := ctx.Err(); err != nil {
		return Request{}, errors.NewCancelledError("initialization interrupted", err)
	}

	req := Request{
		ProjectName:    s.Name,
		Description:    strings.TrimSpace(validation.SanitizeInput(s.Description)),
		SkipGitRemoval: s.SkipGit,
		DryRun:         s.DryRun,
	}
	if err := req.Validate(); err != nil {
		return Request{}, err
	}

	return req, nil
}

// PromptSource collects the request interactively.
type PromptSource struct {
	In  io.Reader
	Out io.Writer

	// Values already fixed by flags; the matching prompt is skipped.
	Description string
	SkipGit     bool
	DryRun      bool

	reader *bufio.Reader
}

// Request asks for the project name until a valid one is entered, then for
// the optional description and git removal, and finally for confirmation.
// A declined confirmation or end of input cancels the run.
func (s *PromptSource) Request(ctx context.Context) (Request, error) {
	s.reader = bufio.NewReader(s.In)

	name, err := s.askName(ctx)
	if err != nil {
		return Request{}, err
	}

	req := Request{
		ProjectName:    name,
		Description:    strings.TrimSpace(validation.SanitizeInput(s.Description)),
		SkipGitRemoval: s.SkipGit,
		DryRun:         s.DryRun,
		Interactive:    true,
	}

	if req.Description == "" {
		custom, err := s.askBool(ctx, "Add a custom description?", false)
		if err != nil {
			return Request{}, err
		}
		if custom {
			desc, err := s.askString(ctx, "Project description")
			if err != nil {
				return Request{}, err
			}
			req.Description = desc
		}
	}

	if !req.SkipGitRemoval {
		remove, err := s.askBool(ctx, "Remove the existing git repository?", true)
		if err != nil {
			return Request{}, err
		}
		req.SkipGitRemoval = !remove
	}

	fmt.Fprintln(s.Out)
	fmt.Fprintf(s.Out, "  Project name:  %s\n", req.ProjectName)
	if req.Description != "" {
		fmt.Fprintf(s.Out, "  Description:   %s\n", req.Description)
	} else {
		fmt.Fprintf(s.Out, "  Description:   (default)\n")
	}
	fmt.Fprintf(s.Out, "  Remove .git:   %s\n", yesNo(!req.SkipGitRemoval))
	fmt.Fprintln(s.Out)

	proceed, err := s.askBool(ctx, "Proceed with initialization?", false)
	if err != nil {
		return Request{}, err
	}
	if !proceed {
		return Request{}, errors.ErrCancelled()
	}

	return req, nil
}

func (s *PromptSource) askName(ctx context.Context) (string, error) {
	for {
		name, err := s.askString(ctx, "Project name (lowercase, with hyphens or underscores)")
		if err != nil {
			return "", err
		}

		if name == "" {
			fmt.Fprintln(s.Out, "✗ A project name is required.")
			continue
		}

		if err := ValidateName(name); err != nil {
			fmt.Fprintln(s.Out, "✗ "+errors.FormatErrorWithSuggestions(err))
			continue
		}

		return name, nil
	}
}

func (s *PromptSource) askString(ctx context.Context, prompt string) (string, error) {
	fmt.Fprintf(s.Out, "%s: ", prompt)

	return s.readLine(ctx)
}

func (s *PromptSource) askBool(ctx context.Context, prompt string, defaultValue bool) (bool, error) {
	hint := "y/N"
	if defaultValue {
		hint = "Y/n"
	}

	for {
		fmt.Fprintf(s.Out, "%s [%s]: ", prompt, hint)
		input, err := s.readLine(ctx)
		if err != nil {
			return false, err
		}

		switch strings.ToLower(input) {
		case "":
			return defaultValue, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		default:
			fmt.Fprintln(s.Out, "Please answer y or n.")
		}
	}
}

func (s *PromptSource) readLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", errors.NewCancelledError("initialization interrupted", err)
	}

	line, err := s.reader.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		if err == io.EOF {
			fmt.Fprintln(s.Out)
			return "", errors.NewCancelledError("input closed before initialization was confirmed", err)
		}
		return "", errors.NewIOError(errors.ErrCodeReadFailed, "failed to read input", err)
	}

	return strings.TrimSpace(validation.SanitizeInput(line)), nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
