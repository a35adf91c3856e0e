package main

import (
	"errors"
	"strings"
	"testing"

	"brokerkit/internal/models"
	"brokerkit/internal/utils/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collectImport(t *testing.T, csvBody string, upsertErr map[string]error) ([]models.ContentMeta, importStats) {
	t.Helper()
	var seen []models.ContentMeta
	stats, err := importCSV(models.CategoryEmailCampaigns, strings.NewReader(csvBody),
		func(meta models.ContentMeta, get func(string) string) error {
			if err, ok := upsertErr[meta.Slug]; ok {
				return err
			}
			seen = append(seen, meta)
			return nil
		}, logger.New("import_test"))
	require.NoError(t, err)
	return seen, stats
}

func TestImportCSVSkipsBadRows(t *testing.T) {
	body := "name,slug,region\n" +
		"Spring Open House,spring-open-house,US\n" +
		"Bad Region Row,bad-region,MX\n" +
		"Fall Farming,fall-farming,CA\n"

	seen, stats := collectImport(t, body, nil)

	assert.Equal(t, 2, stats.imported)
	assert.Equal(t, 1, stats.skipped)
	require.Len(t, seen, 2)
	assert.Equal(t, "spring-open-house", seen[0].Slug)
	assert.Equal(t, "fall-farming", seen[1].Slug)
}

func TestImportCSVSkipsMalformedAndEmptyRows(t *testing.T) {
	body := "name,slug,region\n" +
		"Broken\"Row,broken,US\n" +
		",missing-name,US\n" +
		"Just Listed,just-listed,US\n"

	seen, stats := collectImport(t, body, nil)

	assert.Equal(t, 1, stats.imported)
	assert.Equal(t, 2, stats.skipped)
	require.Len(t, seen, 1)
	assert.Equal(t, "just-listed", seen[0].Slug)
}

func TestImportCSVSkipsFailedUpserts(t *testing.T) {
	body := "name,slug\n" +
		"First,first\n" +
		"Second,second\n"

	seen, stats := collectImport(t, body, map[string]error{
		"first": errors.New("duplicate key"),
	})

	assert.Equal(t, 1, stats.imported)
	assert.Equal(t, 1, stats.skipped)
	require.Len(t, seen, 1)
	assert.Equal(t, "second", seen[0].Slug)
}

func TestImportCSVDefaultsSlugAndRegion(t *testing.T) {
	body := "name\nNew Listing Alert!\n"

	seen, stats := collectImport(t, body, nil)

	assert.Equal(t, 1, stats.imported)
	require.Len(t, seen, 1)
	assert.Equal(t, "new-listing-alert", seen[0].Slug)
	assert.Equal(t, models.RegionDefault, seen[0].Region)
}

func TestImportCSVRejectsHeaderWithoutName(t *testing.T) {
	_, err := importCSV(models.CategoryEmailCampaigns, strings.NewReader("slug,region\n"),
		func(models.ContentMeta, func(string) string) error { return nil },
		logger.New("import_test"))
	assert.Error(t, err)
}
