package service

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"book-catalog/internal/domains/book/model"
	"book-catalog/internal/domains/book/repository"
)

func newImporter() (BulkImportServiceInterface, *repository.MemoryStore) {
	store := repository.NewMemoryStore()
	return NewBulkImportService(NewCreatePipeline(store)), store
}

func TestImportBooks_CSV(t *testing.T) {
	importer, store := newImporter()
	csvData := strings.Join([]string{
		"ISBN,Title,Author",
		"9780441172719,Dune,Frank Herbert",
		"9780441172719,Dune Again,Frank Herbert",
		"1234567890,Bad!,Someone",
		",,",
		"1111111111,Emma,",
		"2222222222,Emma,Jane Austen",
	}, "\n")

	result, err := importer.ImportBooks(context.Background(), "books.CSV", strings.NewReader(csvData))
	require.NoError(t, err)

	assert.Equal(t, 5, result.TotalRows)
	assert.Equal(t, 2, result.Imported)
	assert.Equal(t, 3, result.Failed)

	require.Len(t, result.Results, 5)
	assert.Equal(t, model.ImportStatusImported, result.Results[0].Status)
	assert.Equal(t, 1, result.Results[0].Row)
	assert.Equal(t, model.MsgDuplicateBook, result.Results[1].Error)
	assert.Equal(t, model.MsgTitleRule, result.Results[2].Error)
	assert.Equal(t, 5, result.Results[3].Row)
	assert.Equal(t, "Missing or empty required fields: author", result.Results[3].Error)
	assert.Equal(t, model.ImportStatusImported, result.Results[4].Status)

	books, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, books, 2)
}

func TestImportBooks_XLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]interface{}{
		{"title", "author", "isbn"},
		{"Dune", "Frank Herbert", "9780441172719"},
		{"Emma", "Jane Austen", "1234567890"},
	}
	for i, row := range rows {
		cellName, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cellName, &row))
	}
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	require.NoError(t, f.Close())

	importer, _ := newImporter()
	result, err := importer.ImportBooks(context.Background(), "books.xlsx", &buf)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Imported)
	assert.Equal(t, 0, result.Failed)
}

func TestImportBooks_Rejects(t *testing.T) {
	importer, _ := newImporter()
	ctx := context.Background()

	_, err := importer.ImportBooks(ctx, "books.txt", strings.NewReader("title,author,isbn"))
	assert.ErrorIs(t, err, ErrUnsupportedFileType)

	_, err = importer.ImportBooks(ctx, "books.csv", strings.NewReader("title,author\nDune,Frank"))
	assert.ErrorIs(t, err, ErrMissingColumns)

	_, err = importer.ImportBooks(ctx, "books.csv", strings.NewReader(""))
	assert.ErrorIs(t, err, ErrMissingColumns)

	_, err = importer.ImportBooks(ctx, "books.xlsx", strings.NewReader("not a zip"))
	assert.ErrorIs(t, err, ErrUnreadableFile)

	var sb strings.Builder
	sb.WriteString("title,author,isbn\n")
	for i := 0; i <= maxImportRows; i++ {
		sb.WriteString("T,A,1234567890\n")
	}
	_, err = importer.ImportBooks(ctx, "books.csv", strings.NewReader(sb.String()))
	assert.ErrorIs(t, err, ErrTooManyRows)
}
