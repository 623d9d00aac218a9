package services

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"izaanhr/cv-intake-bot/internal/models"
)

// ProcessorService runs the slow half of an accepted CV upload: download,
// text extraction, scoring, ledger append, cloud mirror, candidate reply.
// Nothing here may panic or surface an error past the worker; every failure
// turns into a best-effort candidate notification and a log line.
type ProcessorService interface {
	ProcessCV(ctx context.Context, job Job) error
}

type processorService struct {
	whatsapp      WhatsAppService
	storage       StorageService
	pdfParser     PDFParserService
	ollama        OllamaService
	ledger        LedgerService
	drive         DriveService
	promptBuilder *PromptBuilder
	minCVLength   int
}

// NewProcessorService wires the pipeline. drive may be nil when cloud sync is
// disabled; the pipeline then runs local-only.
func NewProcessorService(
	whatsapp WhatsAppService,
	storage StorageService,
	pdfParser PDFParserService,
	ollama OllamaService,
	ledger LedgerService,
	drive DriveService,
	minCVLength int,
) ProcessorService {
	return &processorService{
		whatsapp:      whatsapp,
		storage:       storage,
		pdfParser:     pdfParser,
		ollama:        ollama,
		ledger:        ledger,
		drive:         drive,
		promptBuilder: NewPromptBuilder(),
		minCVLength:   minCVLength,
	}
}

// ProcessCV implements ProcessorService.
func (p *processorService) ProcessCV(ctx context.Context, job Job) error {
	log.Printf("🧵 Job %s: analyzing CV for %s (%s)\n", job.ID, job.Position, job.From)

	// Fetch and store the document first; the media URL expires quickly.
	mediaURL, err := p.whatsapp.FetchMediaURL(ctx, job.MediaID)
	if err != nil {
		p.notify(ctx, job.From, "⚠️ We couldn't retrieve your CV. Please try sending it again.")
		return fmt.Errorf("failed to fetch media url: %w", err)
	}

	data, err := p.whatsapp.DownloadMedia(ctx, mediaURL)
	if err != nil {
		p.notify(ctx, job.From, "⚠️ We couldn't retrieve your CV. Please try sending it again.")
		return fmt.Errorf("failed to download media: %w", err)
	}

	filePath, err := p.storage.SaveDownload(job.MediaID, data)
	if err != nil {
		p.notify(ctx, job.From, "⚠️ Something went wrong on our side. Please try again later.")
		return fmt.Errorf("failed to save download: %w", err)
	}

	cvText, err := p.pdfParser.ExtractText(filePath)
	if err != nil {
		p.notify(ctx, job.From, "⚠️ Error reading your PDF content.")
		return fmt.Errorf("failed to extract text: %w", err)
	}

	if len(cvText) < p.minCVLength {
		p.notify(ctx, job.From, "⚠️ We couldn't read enough text from your PDF. Please send a text-based PDF, not a scan.")
		return fmt.Errorf("extracted text too short: %d chars", len(cvText))
	}

	prompt := p.promptBuilder.BuildScoringPrompt(job.Position, cvText)

	raw, err := p.ollama.Generate(ctx, prompt)
	if err != nil {
		p.notify(ctx, job.From, "⚠️ AI Service error. Please try again later.")
		return fmt.Errorf("failed to score CV: %w", err)
	}

	// A reply we can't parse still gets recorded, just with sentinels and
	// a manual-review label instead of a derived one.
	reply, ok := ParseScoreReply(raw)
	rankLabel := models.RankManualReview
	if ok {
		rankLabel = models.RankLabel(reply.Score)
	} else {
		log.Printf("⚠️  Job %s: unparseable scorer reply, recording sentinels\n", job.ID)
		reply = ScoreReply{Score: "0", Analysis: "Parsing Error"}
	}

	record := models.ScoredApplication{
		Timestamp: time.Now(),
		Phone:     job.From,
		Position:  job.Position,
		RawScore:  reply.Score,
		RankLabel: rankLabel,
		Analysis:  reply.Analysis,
	}

	if err := p.ledger.Append(record); err != nil {
		log.Printf("❌ Job %s: LEDGER APPEND FAILED, application for %s not recorded: %v\n", job.ID, job.From, err)
		p.notify(ctx, job.From, "⚠️ We hit a problem saving your application. Please try again later.")
		return fmt.Errorf("failed to append to ledger: %w", err)
	}
	log.Printf("📊 Job %s: ledger updated for %s\n", job.ID, job.From)

	// Mirror is best-effort. The local append already succeeded, so the
	// candidate still gets the success reply. The local CV copy is only
	// removed once it lives on Drive; until then it is the sole copy.
	if p.mirror(ctx, job, filePath) {
		if err := p.storage.DeleteFile(filePath); err != nil {
			log.Printf("⚠️  Job %s: failed to remove local CV copy: %v\n", job.ID, err)
		}
	}

	if err := p.whatsapp.SendText(ctx, job.From, "✅ Your application has been logged! Our HR team will review your profile shortly."); err != nil {
		log.Printf("⚠️  Job %s: failed to send confirmation to %s: %v\n", job.ID, job.From, err)
	}

	log.Printf("✅ Job %s: completed for %s\n", job.ID, job.From)
	return nil
}

// mirror reports whether the CV copy reached Drive.
func (p *processorService) mirror(ctx context.Context, job Job, cvPath string) bool {
	if p.drive == nil {
		return false
	}

	log.Printf("☁️  Job %s: syncing artifacts to Drive...\n", job.ID)

	if err := p.drive.UploadOrUpdate(ctx, p.ledger.FilePath(), filepath.Base(p.ledger.FilePath())); err != nil {
		log.Printf("⚠️  Job %s: Drive sync of ledger failed: %v\n", job.ID, err)
	}
	if err := p.drive.UploadOrUpdate(ctx, cvPath, filepath.Base(cvPath)); err != nil {
		log.Printf("⚠️  Job %s: Drive sync of CV failed: %v\n", job.ID, err)
		return false
	}

	return true
}

func (p *processorService) notify(ctx context.Context, to, body string) {
	if err := p.whatsapp.SendText(ctx, to, body); err != nil {
		log.Printf("⚠️  Failed to notify %s: %v\n", to, err)
	}
}
