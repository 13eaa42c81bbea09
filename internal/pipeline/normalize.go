package pipeline

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// Row is the canonical intermediate produced by a format normalizer, before
// it becomes a full transaction record.
type Row struct {
	Description  string
	Date         string // slash-delimited, as found in the export
	AmountCents  int64
	Source       string
	OriginalLine string
}

const chaseHeader = "Transaction Date,Post Date,Description,Category,Type,Amount"

var chaseCardPattern = regexp.MustCompile(`Chase(\d+)`)

// Normalize detects which bank dialect produced the file and converts its
// rows into canonical form. Unsupported formats are logged and contribute
// nothing; they are never an error.
func Normalize(contents, filename string, log zerolog.Logger) []Row {
	contents = strings.ReplaceAll(contents, "\r", "")
	var lines []string
	for _, line := range strings.Split(contents, "\n") {
		if len(strings.ReplaceAll(line, " ", "")) > 0 {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return nil
	}

	switch {
	case strings.HasPrefix(lines[0], "posted,") || strings.HasPrefix(lines[0], "forecasted,"):
		return normalizeUSAA(lines, log)
	case strings.HasPrefix(lines[0], chaseHeader):
		// Skip the header row.
		return normalizeChase(lines[1:], filename, log)
	case lines[0] == "Barclays Bank Delaware":
		// The first four lines are boilerplate.
		return normalizeBarclay(lines[4:], log)
	default:
		log.Warn().Str("filename", filename).Msg("unknown file format, skipping")
		return nil
	}
}

// normalizeUSAA handles USAA checking exports. Only "posted" rows count;
// "forecasted" rows are pending and will show up again. The amount field
// carries a leading currency symbol.
func normalizeUSAA(lines []string, log zerolog.Logger) []Row {
	var rows []Row
	for _, line := range lines {
		tokens := ParseLine(line)
		if len(tokens) < 7 || tokens[0] == "forecasted" || tokens[6] == "" {
			continue
		}
		// Drop the leading currency symbol.
		amount, err := parseCents(tokens[6][1:], 1)
		if err != nil {
			log.Warn().Str("amount", tokens[6]).Msg("skipping row with bad USAA amount")
			continue
		}
		rows = append(rows, Row{
			Description:  tokens[4],
			Date:         tokens[2],
			AmountCents:  amount,
			Source:       "usaa",
			OriginalLine: line,
		})
	}
	return rows
}

// normalizeChase handles Chase card exports. The card number comes from the
// filename; the sign is flipped so charges are positive, matching the
// convention of the existing history. The dedup line is rewritten into the
// older export shape so re-imports of the same transaction keep matching.
func normalizeChase(lines []string, filename string, log zerolog.Logger) []Row {
	cardID := "0000"
	if m := chaseCardPattern.FindStringSubmatch(filename); m != nil {
		cardID = m[1]
	}

	var rows []Row
	for _, line := range lines {
		tokens := ParseLine(line)
		if len(tokens) < 6 {
			log.Warn().Strs("tokens", tokens).Msg("short Chase row, stopping")
			break
		}
		amount, err := parseCents(tokens[5], -1)
		if err != nil {
			// A row the amount parser rejects means the tail of the file is
			// malformed; keep what was parsed so far and drop the rest.
			log.Warn().Strs("tokens", tokens).Msg("bad Chase amount, stopping")
			break
		}
		oldLine := strings.Join([]string{tokens[4], tokens[0], tokens[1], tokens[2], tokens[5]}, ",")
		rows = append(rows, Row{
			Description:  tokens[2],
			Date:         tokens[0],
			AmountCents:  amount,
			Source:       "chase" + cardID,
			OriginalLine: oldLine,
		})
	}
	return rows
}

// normalizeBarclay handles Barclay card exports: date, description,
// category, amount. Sign is flipped like Chase.
func normalizeBarclay(lines []string, log zerolog.Logger) []Row {
	var rows []Row
	for _, line := range lines {
		tokens := ParseLine(line)
		if len(tokens) < 4 {
			continue
		}
		amount, err := parseCents(tokens[3], -1)
		if err != nil {
			log.Warn().Str("amount", tokens[3]).Msg("skipping row with bad Barclay amount")
			continue
		}
		rows = append(rows, Row{
			Description:  tokens[1],
			Date:         tokens[0],
			AmountCents:  amount,
			Source:       "barclay",
			OriginalLine: line,
		})
	}
	return rows
}

// parseCents parses a decimal dollar string into signed cents, multiplying
// by sign. Integer cents avoid the drift of accumulating float dollars.
func parseCents(s string, sign int64) (int64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	return sign * int64(math.Round(f*100)), nil
}
