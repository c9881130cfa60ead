package services

import (
	"context"
	"fmt"

	"github.com/studyfeed/content-service/internal/models"
	"github.com/studyfeed/content-service/internal/utils"
	"github.com/xuri/excelize/v2"
)

// ExportService produces an Excel snapshot of the question bank for
// offline review by the administrator.
type ExportService interface {
	ExportQuestionsToExcel(ctx context.Context, subject string) ([]byte, error)
}

type exportService struct {
	questions QuestionService
	logger    utils.Logger
}

func NewExportService(questions QuestionService, logger utils.Logger) ExportService {
	return &exportService{
		questions: questions,
		logger:    logger.With("service", "export"),
	}
}

func (s *exportService) ExportQuestionsToExcel(ctx context.Context, subject string) ([]byte, error) {
	questions, err := s.questions.List(ctx, subject)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	sheetName := "Questions"

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{
		"Subject", "Prompt", "Option A", "Option B", "Option C", "Option D",
		"Correct Answer", "Hint", "Explanation",
	}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}

	for rowIndex, question := range questions {
		row := questionToExportRow(&question)
		for colIndex, value := range row {
			cell := fmt.Sprintf("%c%d", 'A'+colIndex, rowIndex+2)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}

	s.logger.Info("exported question bank", "questions", len(questions))
	return buf.Bytes(), nil
}

func questionToExportRow(q *models.Question) []string {
	row := []string{q.Subject, q.Prompt}
	for i := 0; i < models.QuestionOptionCount; i++ {
		text := ""
		if i < len(q.Options) {
			text = q.Options[i].Text
		}
		row = append(row, text)
	}
	return append(row, q.CorrectLabel, q.Hint, q.Explanation)
}
