package services

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studyfeed/content-service/internal/utils"
	"github.com/xuri/excelize/v2"
)

func TestExportQuestionsToExcel(t *testing.T) {
	questions, _ := newFileModeQuestionService(t)
	export := NewExportService(questions, utils.NewDevelopmentLogger())
	ctx := context.Background()

	req := validQuestionRequest()
	_, err := questions.Create(ctx, req)
	require.NoError(t, err)

	data, err := export.ExportQuestionsToExcel(ctx, "")
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	header, err := f.GetCellValue("Questions", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Subject", header)

	subject, err := f.GetCellValue("Questions", "A2")
	require.NoError(t, err)
	assert.Equal(t, "Math", subject)

	prompt, err := f.GetCellValue("Questions", "B2")
	require.NoError(t, err)
	assert.Equal(t, "What is 2+2?", prompt)

	correct, err := f.GetCellValue("Questions", "G2")
	require.NoError(t, err)
	assert.Equal(t, "B", correct)
}

func TestExportQuestionsToExcelFiltersBySubject(t *testing.T) {
	questions, _ := newFileModeQuestionService(t)
	export := NewExportService(questions, utils.NewDevelopmentLogger())
	ctx := context.Background()

	_, err := questions.Create(ctx, validQuestionRequest())
	require.NoError(t, err)

	history := validQuestionRequest()
	history.Subject = "History"
	history.Prompt = "When did WW2 end?"
	_, err = questions.Create(ctx, history)
	require.NoError(t, err)

	data, err := export.ExportQuestionsToExcel(ctx, "history")
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Questions")
	require.NoError(t, err)
	require.Len(t, rows, 2) // header plus one question
	assert.Equal(t, "History", rows[1][0])
}
