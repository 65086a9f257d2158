// Package api exposes the converter over HTTP: a health check and a
// multipart upload endpoint that returns extracted transactions as JSON
// plus the rendered CSV.
package api

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/insightdelivered/statement-tabulator/internal/bank"
	"github.com/insightdelivered/statement-tabulator/internal/engine"
	"github.com/insightdelivered/statement-tabulator/internal/models"
	"github.com/insightdelivered/statement-tabulator/internal/writer"
)

const version = "1.0.0"

// TransactionJSON is one output row in the convert response. Null cells
// serialize as JSON null.
type TransactionJSON struct {
	Date        *string  `json:"date"`
	Description *string  `json:"description"`
	Debit       *float64 `json:"debit"`
	Credit      *float64 `json:"credit"`
	Balance     *float64 `json:"balance"`
}

// ConvertResponse is the JSON response from the /api/convert endpoint.
type ConvertResponse struct {
	Success      bool              `json:"success"`
	Error        string            `json:"error,omitempty"`
	Bank         string            `json:"bank,omitempty"`
	Count        int               `json:"count"`
	Transactions []TransactionJSON `json:"transactions"`
	CSV          string            `json:"csv,omitempty"`
}

// Handler holds the HTTP handlers for the API.
type Handler struct {
	Banks  *bank.Registry
	Source engine.TableSource
	Log    *slog.Logger
}

// Register sets up the API routes on the fiber app.
func (h *Handler) Register(app *fiber.App) {
	app.Get("/api/health", h.HandleHealth)
	app.Post("/api/convert", h.HandleConvert)
}

// HandleHealth reports service liveness.
func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"engine":  "fiber",
		"version": version,
	})
}

// HandleConvert accepts a statement PDF in form field "file" and the bank
// key in form field "bank", and returns the extracted table.
func (h *Handler) HandleConvert(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, "No file uploaded. Use form field 'file'.")
	}
	if !strings.HasSuffix(strings.ToLower(file.Filename), ".pdf") {
		return writeError(c, fiber.StatusBadRequest, "Only PDF files are supported.")
	}

	key := c.FormValue("bank")
	cfg := h.Banks.Get(key)
	if cfg == nil {
		return writeError(c, fiber.StatusBadRequest,
			fmt.Sprintf("Unknown bank %q. Available: %s", key, strings.Join(h.Banks.Banks(), ", ")))
	}

	tmp, err := os.CreateTemp("", "statement-*.pdf")
	if err != nil {
		return writeError(c, fiber.StatusInternalServerError, "Failed to store upload.")
	}
	tmpPath := tmp.Name()
	tmp.Close()
	defer os.Remove(tmpPath)

	if err := c.SaveFile(file, tmpPath); err != nil {
		return writeError(c, fiber.StatusInternalServerError, "Failed to store upload.")
	}

	eng := engine.New(h.Source, cfg.Options(h.Log))
	table, err := eng.Extract(tmpPath)
	if err != nil {
		h.Log.Warn("conversion failed", "file", filepath.Base(file.Filename), "bank", cfg.Bank, "error", err)
		return writeError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	var csvBuf bytes.Buffer
	w := &writer.CSVWriter{}
	if err := w.Write(&csvBuf, table); err != nil {
		return writeError(c, fiber.StatusInternalServerError, "Failed to render CSV.")
	}

	return c.JSON(ConvertResponse{
		Success:      true,
		Bank:         cfg.Bank,
		Count:        len(table.Rows),
		Transactions: toJSON(table),
		CSV:          csvBuf.String(),
	})
}

func toJSON(table *models.Table) []TransactionJSON {
	out := make([]TransactionJSON, 0, len(table.Rows))
	for _, txn := range table.Rows {
		row := TransactionJSON{Description: txn.Description}
		if txn.Date != nil {
			s := txn.Date.Format("2006-01-02")
			row.Date = &s
		}
		row.Debit = amountPtr(txn.Debit)
		row.Credit = amountPtr(txn.Credit)
		row.Balance = amountPtr(txn.Balance)
		out = append(out, row)
	}
	return out
}

func amountPtr(v decimal.NullDecimal) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Decimal.InexactFloat64()
	return &f
}

func writeError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(ConvertResponse{
		Success:      false,
		Error:        msg,
		Transactions: []TransactionJSON{},
	})
}
