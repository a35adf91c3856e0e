package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"brokerkit/internal/config"
	"brokerkit/internal/db"
	"brokerkit/internal/models"
	"brokerkit/internal/utils/logger"

	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

// Bulk importer for the content catalog. Reads a CSV whose header row
// names the columns and upserts rows by slug, so re-running an import
// is safe.
//
//	go run ./cmd/import -category email-campaigns -file campaigns.csv
//	go run ./cmd/import -seed-weeks 2026
func main() {
	log := logger.New("import")

	category := flag.String("category", "", "content category to import into")
	file := flag.String("file", "", "path to the CSV file")
	seedWeeks := flag.Int("seed-weeks", 0, "seed calendar weeks for the given year instead of importing")
	flag.Parse()

	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			log.Warn("Failed to load .env: %v", err)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		_ = log.Error("Failed to load configuration", err)
		os.Exit(1)
	}

	if err := db.Connect(cfg); err != nil {
		_ = log.Error("Failed to connect to database", err)
		os.Exit(1)
	}
	defer db.Close()

	gdb := db.GetDB()

	if *seedWeeks > 0 {
		if err := models.SeedCalendarWeeks(gdb, *seedWeeks); err != nil {
			_ = log.Error("Failed to seed calendar weeks", err)
			os.Exit(1)
		}
		log.Success("Seeded calendar weeks for %d", *seedWeeks)
		return
	}

	if *category == "" || *file == "" {
		flag.Usage()
		os.Exit(2)
	}

	cat := models.ContentCategory(*category)
	if !models.IsValidCategory(cat) {
		_ = log.Error("Unknown category", fmt.Errorf("%q", *category))
		os.Exit(2)
	}

	f, err := os.Open(*file)
	if err != nil {
		_ = log.Error("Failed to open file", err)
		os.Exit(1)
	}
	defer f.Close()

	stats, err := importCSV(cat, f, func(meta models.ContentMeta, get func(string) string) error {
		return upsertRow(gdb, cat, meta, get)
	}, log)
	if err != nil {
		_ = log.Error("Import failed", err)
		os.Exit(1)
	}
	log.Success("Imported %d rows into %s (%d skipped)", stats.imported, models.ContentTableName(cat), stats.skipped)
}

type importStats struct {
	imported int
	skipped  int
}

type upsertFunc func(meta models.ContentMeta, get func(string) string) error

// importCSV is best-effort: a bad row is logged and skipped, never
// aborting the rest of the file. Only an unreadable header is fatal.
func importCSV(category models.ContentCategory, r io.Reader, upsert upsertFunc, log *logger.Logger) (importStats, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	var stats importStats

	header, err := reader.Read()
	if err != nil {
		return stats, fmt.Errorf("failed to read header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if _, ok := cols["name"]; !ok {
		return stats, fmt.Errorf("missing required column: name")
	}

	for rowNum := 2; ; rowNum++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Warn("row %d: %v, skipping", rowNum, err)
			stats.skipped++
			continue
		}

		get := func(name string) string {
			if i, ok := cols[name]; ok && i < len(record) {
				return strings.TrimSpace(record[i])
			}
			return ""
		}

		meta := models.ContentMeta{
			Name:         get("name"),
			Slug:         get("slug"),
			Introduction: get("introduction"),
			ThumbnailURL: get("thumbnail_url"),
			Region:       get("region"),
			IsFeatured:   get("is_featured") == "true",
			IsActive:     get("is_active") != "false",
		}
		if meta.Name == "" {
			log.Warn("row %d: missing name, skipping", rowNum)
			stats.skipped++
			continue
		}
		if meta.Slug == "" {
			meta.Slug = slugify(meta.Name)
		}
		if meta.Region == "" {
			meta.Region = models.RegionDefault
		}
		if !models.IsValidRegion(meta.Region) {
			log.Warn("row %d: invalid region %q, skipping", rowNum, meta.Region)
			stats.skipped++
			continue
		}

		if err := upsert(meta, get); err != nil {
			log.Warn("row %d: %v, skipping", rowNum, err)
			stats.skipped++
			continue
		}
		stats.imported++
	}
	return stats, nil
}

func upsertRow(gdb *gorm.DB, category models.ContentCategory, meta models.ContentMeta, get func(string) string) error {
	switch category {
	case models.CategoryEmailCampaigns:
		item := models.EmailCampaign{
			ContentMeta: meta,
			SubjectLine: get("subject_line"),
			BodyHTML:    get("body_html"),
			BodyText:    get("body_text"),
		}
		return gdb.Where("slug = ?", meta.Slug).Assign(item).FirstOrCreate(&models.EmailCampaign{}).Error
	case models.CategoryPhoneTextScript:
		scriptType := get("script_type")
		if scriptType == "" {
			scriptType = "call"
		}
		item := models.PhoneScript{
			ContentMeta: meta,
			ScriptType:  scriptType,
			Body:        get("body"),
		}
		return gdb.Where("slug = ?", meta.Slug).Assign(item).FirstOrCreate(&models.PhoneScript{}).Error
	case models.CategorySocialShareable:
		item := models.SocialShareable{
			ContentMeta: meta,
			AssetURL:    get("asset_url"),
			Caption:     get("caption"),
		}
		return gdb.Where("slug = ?", meta.Slug).Assign(item).FirstOrCreate(&models.SocialShareable{}).Error
	case models.CategoryDirectMail:
		paperSize := get("paper_size")
		if paperSize == "" {
			paperSize = "letter"
		}
		item := models.DirectMailTemplate{
			ContentMeta: meta,
			TemplateURL: get("template_url"),
			PaperSize:   paperSize,
		}
		return gdb.Where("slug = ?", meta.Slug).Assign(item).FirstOrCreate(&models.DirectMailTemplate{}).Error
	}
	return fmt.Errorf("unknown category: %s", category)
}

func slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	var b strings.Builder
	lastDash := false
	for _, r := range s {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash && b.Len() > 0 {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
