// Package api exposes the converter over HTTP for clients that upload one
// statement at a time.
package api

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/insightdelivered/cep-statement-ledger/internal/extractor"
	"github.com/insightdelivered/cep-statement-ledger/internal/ledger"
	"github.com/insightdelivered/cep-statement-ledger/internal/logger"
	"github.com/insightdelivered/cep-statement-ledger/internal/models"
	"github.com/insightdelivered/cep-statement-ledger/internal/parser"
	"github.com/insightdelivered/cep-statement-ledger/internal/reconcile"
)

const version = "1.0.0"

// ConvertResponse is the JSON response from the /api/convert endpoint.
type ConvertResponse struct {
	Success       bool                  `json:"success"`
	Error         string                `json:"error,omitempty"`
	RunID         string                `json:"runId,omitempty"`
	Owner         string                `json:"owner,omitempty"`
	EmissionDate  string                `json:"emissionDate,omitempty"`
	Transactions  []models.Transaction  `json:"transactions"`
	Discrepancies []models.Discrepancy  `json:"discrepancies,omitempty"`
	Warnings      []string              `json:"warnings,omitempty"`
	Summary       *models.Summary       `json:"summary,omitempty"`
	CSV           string                `json:"csv,omitempty"`
	Version       string                `json:"version,omitempty"`
}

// RegisterRoutes sets up the API routes.
func RegisterRoutes(app *fiber.App) {
	app.Get("/api/health", HandleHealth)
	app.Post("/api/convert", HandleConvert)
}

// HandleHealth reports service liveness.
func HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"engine":  "fiber",
		"version": version,
	})
}

// HandleConvert converts one uploaded statement. The client sends either a
// PDF in the "file" form field or pre-extracted text in "extractedText".
func HandleConvert(c *fiber.Ctx) error {
	text, err := statementText(c)
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, err.Error())
	}

	runID := uuid.NewString()
	log := logger.NewWithWriter(io.Discard)
	p := parser.New(log)

	info, err := p.Parse(runID, text)
	if err != nil {
		return writeError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	led := ledger.New()
	for _, acct := range info.Accounts {
		led.Append(acct.Transactions...)
		if d, ok := reconcile.Check(acct); !ok {
			led.AddDiscrepancy(d)
		}
	}
	led.Sort()

	var buf bytes.Buffer
	if err := led.Export(&buf); err != nil {
		return writeError(c, fiber.StatusInternalServerError, err.Error())
	}

	summary := led.Summary()
	return c.JSON(ConvertResponse{
		Success:       true,
		RunID:         runID,
		Owner:         info.Owner,
		EmissionDate:  info.EmissionDate.Format("02/01/2006"),
		Transactions:  led.Transactions(),
		Discrepancies: led.Discrepancies(),
		Warnings:      info.Warnings,
		Summary:       &summary,
		CSV:           buf.String(),
		Version:       version,
	})
}

// statementText resolves the request body to statement text: pre-extracted
// text when present, otherwise server-side extraction of the uploaded PDF.
func statementText(c *fiber.Ctx) (string, error) {
	if text := c.FormValue("extractedText"); strings.TrimSpace(text) != "" {
		return text, nil
	}

	header, err := c.FormFile("file")
	if err != nil {
		return "", fmt.Errorf("no file uploaded; use form field 'file' or 'extractedText'")
	}
	if !strings.HasSuffix(strings.ToLower(header.Filename), ".pdf") {
		return "", fmt.Errorf("only PDF files are supported")
	}

	tmp, err := os.CreateTemp("", "statement-*.pdf")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()

	src, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	if _, err := io.Copy(tmp, src); err != nil {
		return "", fmt.Errorf("failed to save upload: %w", err)
	}

	pages, err := extractor.ExtractText(tmp.Name())
	if err != nil {
		return "", err
	}
	return strings.Join(pages, "\n"), nil
}

func writeError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(ConvertResponse{
		Success:      false,
		Error:        msg,
		Transactions: []models.Transaction{},
	})
}
