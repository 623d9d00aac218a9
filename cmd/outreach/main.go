package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"izaanhr/cv-intake-bot/internal/config"
	"izaanhr/cv-intake-bot/internal/phone"
	"izaanhr/cv-intake-bot/internal/services"
)

// outreach sends the opening hello_world template to every valid lead in a
// spreadsheet. Numbers that don't normalize to the Pakistani mobile format
// are skipped. With -check it only validates the sheet and sends nothing.
func main() {
	var (
		leadsFile = flag.String("file", "leads.xlsx", "leads spreadsheet to read")
		column    = flag.String("column", "phone", "header of the column holding phone numbers")
		template  = flag.String("template", "hello_world", "message template to send")
		lang      = flag.String("lang", "en_US", "template language code")
		delay     = flag.Duration("delay", time.Second, "pause between sends to stay under rate limits")
		check     = flag.Bool("check", false, "validate numbers only, do not send")
	)
	flag.Parse()

	cfg := config.Load()

	numbers, invalid, err := loadLeads(*leadsFile, *column)
	if err != nil {
		log.Fatalf("❌ Failed to read leads: %v", err)
	}
	log.Printf("📋 Loaded %d valid numbers (%d invalid rows skipped) from %s\n", len(numbers), invalid, *leadsFile)

	if *check {
		return
	}

	whatsapp := services.NewWhatsAppService(cfg.WhatsApp)
	ctx := context.Background()

	sent := 0
	for _, number := range numbers {
		log.Printf("📤 Sending to %s...\n", number)
		if err := whatsapp.SendTemplate(ctx, number, *template, *lang); err != nil {
			log.Printf("❌ Failed for %s: %v\n", number, err)
		} else {
			sent++
		}
		time.Sleep(*delay)
	}

	log.Printf("✅ Done: %d/%d sent\n", sent, len(numbers))
}

// loadLeads reads the phone column from the first sheet and normalizes every
// row, reporting how many rows were rejected. Each rejected row is logged so
// the sheet can be cleaned up (the -check mode exists for exactly that).
func loadLeads(path, column string) ([]string, int, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, 0, fmt.Errorf("sheet %s is empty", sheet)
	}

	colIdx := -1
	for i, header := range rows[0] {
		if strings.EqualFold(strings.TrimSpace(header), column) {
			colIdx = i
			break
		}
	}
	if colIdx == -1 {
		return nil, 0, fmt.Errorf("column %q not found in sheet %s", column, sheet)
	}

	var numbers []string
	invalid := 0
	for i, row := range rows[1:] {
		if colIdx >= len(row) {
			continue
		}
		raw := strings.TrimSpace(row[colIdx])
		if raw == "" {
			continue
		}

		normalized, ok := phone.Normalize(raw)
		if !ok {
			log.Printf("❌ Row %d: %s -> INVALID\n", i+2, raw)
			invalid++
			continue
		}

		log.Printf("✅ Row %d: %s -> %s\n", i+2, raw, normalized)
		numbers = append(numbers, normalized)
	}

	return numbers, invalid, nil
}
