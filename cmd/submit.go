package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/bnema/credit-entry-cli/internal/adapters/render/feedback"
	"github.com/bnema/credit-entry-cli/internal/adapters/surface/memory"
	"github.com/bnema/credit-entry-cli/internal/adapters/surface/tomlform"
	"github.com/bnema/credit-entry-cli/internal/application"
	"github.com/bnema/credit-entry-cli/internal/domain"
	"github.com/bnema/credit-entry-cli/internal/ports"
	"github.com/spf13/cobra"
)

var errNotSaved = errors.New("entry not saved")

func newSubmitCmd(app *app) *cobra.Command {
	var (
		fields   fieldFlags
		formPath string
		dryRun   bool
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Validate a credit entry and post it to the endpoint",
		Long: "Build a credit entry from flags or a form file, derive the credit change from the plan, " +
			"validate it and post it. Flags override the values read from --form. " +
			"A saved entry clears the form file.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			input, err := openInput(formPath)
			if err != nil {
				return err
			}
			fields.apply(cmd, input)

			term := newTerminalFeedback(cmd.OutOrStdout(), cmd.ErrOrStderr(), asJSON)
			controller := app.newController(ports.Compose(input, term))

			if dryRun {
				return runPreview(cmd.OutOrStdout(), controller, asJSON)
			}

			if notice := controller.Notice(); notice != "" && !asJSON {
				term.ShowNotice(notice)
			}

			outcome, err := controller.Submit(cmd.Context())
			if err != nil {
				return err
			}

			if asJSON {
				if err := writeJSON(cmd.OutOrStdout(), outcome); err != nil {
					return err
				}
			}

			if !outcome.Saved() {
				return fmt.Errorf("%w: %s", errNotSaved, outcome.Kind)
			}
			return nil
		},
	}

	fields.register(cmd)
	cmd.Flags().StringVar(&formPath, "form", "", "Read field values from a TOML form file")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show the derived entry and validation result without posting")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the outcome as JSON")

	return cmd
}

func openInput(formPath string) (ports.InputSurface, error) {
	if formPath == "" {
		return memory.NewSurface(domain.FormValues{}), nil
	}

	surface, err := tomlform.Open(formPath)
	if err != nil {
		return nil, fmt.Errorf("open form: %w", err)
	}
	return surface, nil
}

type previewOutput struct {
	Record domain.SubmissionRecord `json:"record"`
	Valid  bool                    `json:"valid"`
	Error  string                  `json:"error,omitempty"`
}

func runPreview(out io.Writer, controller *application.Controller, asJSON bool) error {
	record, validationErr := controller.Preview()

	if asJSON {
		if err := writeJSON(out, previewOutput{Record: record, Valid: validationErr == "", Error: validationErr}); err != nil {
			return err
		}
	} else {
		if _, err := fmt.Fprintln(out, feedback.RenderRecord(record)); err != nil {
			return err
		}
		if validationErr == "" {
			if _, err := fmt.Fprintln(out, "valid"); err != nil {
				return err
			}
		}
	}

	if validationErr != "" {
		return fmt.Errorf("%w: %s", errNotSaved, validationErr)
	}
	return nil
}

func writeJSON(out io.Writer, value any) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(value); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}
