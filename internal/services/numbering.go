package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pkaczor/serwisapp/internal/models"
	"gorm.io/gorm"
)

// Year-scoped display numbers: ZL/<year>/<4-digit-seq> for orders,
// KS/<year>/<4-digit-seq> for quotes. The next sequence is derived by
// scanning existing numbers under the current year's prefix and taking
// max+1, so deleted numbers are never reused and gaps are allowed. The
// scan-then-write pair is not locked across operations; callers run it
// inside the creating transaction and the tool assumes a single writer.

const (
	orderNumberTag = "ZL"
	quoteNumberTag = "KS"
)

func NextOrderNumber(tx *gorm.DB, now time.Time) (string, error) {
	return nextNumber(tx, &models.Order{}, "order_number", orderNumberTag, now)
}

func NextQuoteNumber(tx *gorm.DB, now time.Time) (string, error) {
	return nextNumber(tx, &models.Quote{}, "quote_number", quoteNumberTag, now)
}

func nextNumber(tx *gorm.DB, model any, column, tag string, now time.Time) (string, error) {
	prefix := fmt.Sprintf("%s/%d/", tag, now.Year())
	var numbers []string
	if err := tx.Model(model).Where(column+" LIKE ?", prefix+"%").Pluck(column, &numbers).Error; err != nil {
		return "", StoreErr("number_scan", err)
	}
	max := 0
	for _, n := range numbers {
		// third slash-delimited segment; anything unparsable contributes 0
		parts := strings.Split(n, "/")
		if len(parts) < 3 {
			continue
		}
		seq, err := strconv.Atoi(parts[2])
		if err != nil {
			continue
		}
		if seq > max {
			max = seq
		}
	}
	return fmt.Sprintf("%s%04d", prefix, max+1), nil
}

// SequenceOf extracts the numeric sequence from a display number, 0 when it
// does not parse.
func SequenceOf(number string) int {
	parts := strings.Split(number, "/")
	if len(parts) < 3 {
		return 0
	}
	seq, err := strconv.Atoi(parts[2])
	if err != nil {
		return 0
	}
	return seq
}
