package report

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/signintech/gopdf"
	"go.uber.org/zap"

	"health-triage/internal/triage"
)

// TelegramClient sends clinician alerts.
type TelegramClient interface {
	SendMessage(chatID int64, text string) error
	SendDocument(chatID int64, fileData []byte, fileName string) error
}

// Service renders analysis reports and pushes emergency alerts.
type Service struct {
	tgClient        TelegramClient
	clinicianChatID int64
	logger          *zap.Logger
}

func NewService(tg TelegramClient, clinicianChatID int64, logger *zap.Logger) *Service {
	return &Service{
		tgClient:        tg,
		clinicianChatID: clinicianChatID,
		logger:          logger,
	}
}

// dejavuFontPaths are tried in order; DejaVuSans ships with most
// distributions and covers the characters we print.
var dejavuFontPaths = []string{
	"/usr/share/fonts/ttf-dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
}

// RenderPDF produces a printable summary of one analysis: overall
// triage, per-condition risks, contributing factors and recommendations.
func (s *Service) RenderPDF(record *triage.AnalysisRecord) ([]byte, error) {
	pdf := gopdf.GoPdf{}
	pdf.Start(gopdf.Config{PageSize: *gopdf.PageSizeA4})
	pdf.AddPage()

	fontLoaded := false
	var fontErr error
	for _, path := range dejavuFontPaths {
		if err := pdf.AddTTFFont("DejaVu", path); err == nil {
			fontLoaded = true
			break
		} else {
			fontErr = err
		}
	}
	if !fontLoaded {
		return nil, fmt.Errorf("failed to load font for PDF: %w", fontErr)
	}

	if err := pdf.SetFont("DejaVu", "", 20); err != nil {
		return nil, err
	}
	pdf.Cell(nil, "Symptom Analysis Report")
	pdf.Br(30)

	if err := pdf.SetFont("DejaVu", "", 12); err != nil {
		return nil, err
	}
	pdf.Cell(nil, fmt.Sprintf("Date: %s", record.CreatedAt.Format("02.01.2006 15:04")))
	pdf.Br(15)
	pdf.Cell(nil, fmt.Sprintf("Patient ID: %s", record.UserID))
	pdf.Br(15)
	pdf.Cell(nil, fmt.Sprintf("Overall triage: %s — %s",
		record.Result.Triage.Overall.Level, record.Result.Triage.Overall.Urgency))
	pdf.Br(25)

	if err := pdf.SetFont("DejaVu", "", 14); err != nil {
		return nil, err
	}
	pdf.Cell(nil, "Condition risks:")
	pdf.Br(15)

	if err := pdf.SetFont("DejaVu", "", 11); err != nil {
		return nil, err
	}
	risks := record.Result.ConditionRisks
	for _, row := range []struct {
		name  string
		score triage.ConditionScore
	}{
		{"Diabetes", risks.Diabetes},
		{"Heart disease", risks.Heart},
		{"Stroke", risks.Stroke},
	} {
		pdf.Cell(nil, fmt.Sprintf("- %s: %.2f (%s)", row.name, row.score.Risk, row.score.Level))
		pdf.Br(12)
	}
	pdf.Br(10)

	if err := pdf.SetFont("DejaVu", "", 14); err != nil {
		return nil, err
	}
	pdf.Cell(nil, "Contributing risk factors:")
	pdf.Br(15)

	if err := pdf.SetFont("DejaVu", "", 11); err != nil {
		return nil, err
	}
	factors := record.Result.RiskFactors
	allFactors := append(append(append([]triage.RiskFactor{}, factors.Diabetes...), factors.Heart...), factors.Stroke...)
	if len(allFactors) == 0 {
		pdf.Cell(nil, "- None above clinical thresholds.")
		pdf.Br(12)
	}
	for _, factor := range allFactors {
		line := fmt.Sprintf("- %s (%s): %s", factor.Factor, factor.Contribution, factor.Description)
		lines, _ := pdf.SplitText(line, 500)
		for _, l := range lines {
			pdf.Cell(nil, l)
			pdf.Br(12)
		}
	}
	pdf.Br(10)

	if err := pdf.SetFont("DejaVu", "", 14); err != nil {
		return nil, err
	}
	pdf.Cell(nil, "Recommendations:")
	pdf.Br(15)

	if err := pdf.SetFont("DejaVu", "", 11); err != nil {
		return nil, err
	}
	for _, recommendation := range record.Result.Recommendations.General {
		lines, _ := pdf.SplitText("- "+recommendation, 500)
		for _, l := range lines {
			pdf.Cell(nil, l)
			pdf.Br(12)
		}
	}

	return pdf.GetBytesPdf(), nil
}

// EmergencyAlert notifies the clinician chat about an Emergency overall
// triage. Best-effort: failures are logged, never propagated.
func (s *Service) EmergencyAlert(ctx context.Context, userID uuid.UUID, record *triage.AnalysisRecord) {
	if s.tgClient == nil || s.clinicianChatID == 0 {
		return
	}

	text := fmt.Sprintf(
		"EMERGENCY triage for patient %s at %s.\nDiabetes: %.2f, Heart: %.2f, Stroke: %.2f.\n%s",
		userID,
		time.Now().Format("02.01.2006 15:04"),
		record.Result.ConditionRisks.Diabetes.Risk,
		record.Result.ConditionRisks.Heart.Risk,
		record.Result.ConditionRisks.Stroke.Risk,
		record.Result.Triage.Overall.Urgency,
	)
	if err := s.tgClient.SendMessage(s.clinicianChatID, text); err != nil {
		s.logger.Error("failed to send emergency alert", zap.Error(err))
		return
	}

	if pdfData, err := s.RenderPDF(record); err == nil {
		fileName := fmt.Sprintf("analysis_%s.pdf", record.ID)
		if err := s.tgClient.SendDocument(s.clinicianChatID, pdfData, fileName); err != nil {
			s.logger.Error("failed to send emergency report document", zap.Error(err))
		}
	}
}
