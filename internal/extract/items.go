package extract

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Item table boundaries in the sample PO layout. The start marker is the
// "Tax %" column header, which the text extractor sometimes splits across two
// lines; the region ends at the tax summary section.
const (
	startMarkerJoined = "Tax%Tax%"
	startMarkerSplit  = "Tax %"
	stopMarker        = "Tax Details"
)

var (
	thousandsRe  = regexp.MustCompile(`(\d),(\d)`)
	dateRe       = regexp.MustCompile(`^\d{1,2}/\d{1,2}/\d{4}`)
	floatLineRe  = regexp.MustCompile(`^\d+\.\d+$`)
	intLineRe    = regexp.MustCompile(`^\d+$`)
	revLineRe    = regexp.MustCompile(`^(?:Rev|REV)\s+\w+`)
	pageFooterRe = regexp.MustCompile(`(?i)page`)
	eachWordRe   = regexp.MustCompile(`(?i)\bEach\b`)
	floatAnyRe   = regexp.MustCompile(`\d+\.\d+`)
)

// parseItems scans the document text for the item table and returns one
// Record per item block, with only the item fields populated. The boolean
// reports whether the table start marker was found at all; a document without
// it is considered format-mismatched for item purposes.
func parseItems(text string) ([]Record, bool) {
	lines := strings.Split(normalizeNumbers(text), "\n")

	var (
		items        []Record
		currentBlock []string
		insideTable  bool
		waitingDate  bool
		startFound   bool
		prevLine     string
	)

	for _, line := range lines {
		line = strings.TrimSpace(line)

		if !insideTable {
			combined := strings.ReplaceAll(prevLine+line, " ", "")
			if combined == startMarkerJoined {
				insideTable = true
				startFound = true
				prevLine = ""
				continue
			}
			prevLine = line
			continue
		}

		if isStopMarker(line) {
			insideTable = false
			continue
		}

		currentBlock = append(currentBlock, line)

		if strings.HasPrefix(line, "Delivery Date:") {
			waitingDate = true
			continue
		}

		if waitingDate && dateRe.MatchString(line) {
			// A page footer inside the block means the table ran across a
			// page boundary and this block is contaminated; drop it and
			// rescan for the next start marker.
			if blockHasPageFooter(currentBlock) {
				currentBlock = nil
				waitingDate = false
				insideTable = false
				prevLine = ""
				continue
			}
			items = append(items, parseBlock(currentBlock))
			currentBlock = nil
			waitingDate = false
		}
	}

	return items, startFound
}

// parseBlock maps one item block (the lines between two delivery dates) to
// the item fields of a Record.
func parseBlock(block []string) Record {
	rec := NewRecord()

	for i, line := range block {
		if strings.HasPrefix(line, "Delivery Date:") && i+1 < len(block) {
			rec[FieldDeliveryDate] = strings.TrimSpace(block[i+1])
			break
		}
	}

	itemCodeIndex := -1
	for i, line := range block {
		if strings.HasPrefix(line, "Item Code:") && i+1 < len(block) {
			rec[FieldItemCode] = strings.TrimSpace(block[i+1])
			itemCodeIndex = i + 1
			break
		}
	}

	// Price is the first float-only line, total the largest. The layout
	// prints unit price before line total; "0.0000" is the discount column.
	var floatLines []string
	for _, line := range block {
		if floatLineRe.MatchString(line) && line != "0.0000" {
			floatLines = append(floatLines, line)
		}
	}
	if len(floatLines) > 0 {
		rec[FieldPrice] = floatLines[0]
		rec[FieldTotal] = maxFloatLine(floatLines)
	}

	if rec[FieldPrice] != "" && rec[FieldTotal] != "" {
		price, errP := strconv.ParseFloat(rec[FieldPrice], 64)
		total, errT := strconv.ParseFloat(rec[FieldTotal], 64)
		if errP == nil && errT == nil && price != 0 {
			qty := math.Round(total/price*10000) / 10000
			rec[FieldQuantity] = strconv.FormatFloat(qty, 'f', -1, 64)
		}
	}

	for _, line := range block {
		if line == "Each" {
			rec[FieldUoM] = "Each"
			break
		}
	}

	revIndex := -1
	for i, line := range block {
		if revLineRe.MatchString(line) {
			rec[FieldItemDetails] = line
			revIndex = i
			break
		}
	}

	if itemCodeIndex != -1 {
		var descLines []string
		switch {
		case revIndex != -1:
			// A revision line printed after the item code leaves no
			// description lines between the two anchors.
			if revIndex+1 < itemCodeIndex {
				descLines = block[revIndex+1 : itemCodeIndex]
			}
		default:
			// Without a revision line, anchor on the nearest line-number
			// (integer-only) line before the item code.
			intIndex := -1
			for j := itemCodeIndex - 1; j >= 0; j-- {
				if intLineRe.MatchString(strings.TrimSpace(block[j])) {
					intIndex = j
					break
				}
			}
			if intIndex != -1 {
				descLines = block[intIndex+1 : itemCodeIndex]
			} else {
				descLines = block[:itemCodeIndex]
			}
		}

		var kept []string
		for _, line := range descLines {
			line = strings.TrimSpace(line)
			if line == "" || strings.HasPrefix(line, "Item Code:") {
				continue
			}
			kept = append(kept, line)
		}
		rec[FieldDescription] = cleanDescription(strings.Join(kept, " "))
	}

	return rec
}

// cleanDescription trims a combined description and collapses the repeated
// prefix/suffix the two-column layout produces. The repetition is only
// collapsed when the middle holds table noise (a UoM word or a number),
// otherwise a legitimately repetitive description is left alone.
func cleanDescription(desc string) string {
	desc = strings.TrimSpace(desc)
	if desc == "" {
		return ""
	}
	words := strings.Fields(desc)
	for length := len(words) / 2; length > 0; length-- {
		start := strings.Join(words[:length], " ")
		end := strings.Join(words[len(words)-length:], " ")
		if !strings.EqualFold(start, end) {
			continue
		}
		middle := strings.Join(words[length:len(words)-length], " ")
		if eachWordRe.MatchString(middle) || floatAnyRe.MatchString(middle) {
			if len(end) > len(start) {
				return end
			}
			return start
		}
	}
	return desc
}

// normalizeNumbers strips thousands separators so "1,234.50" parses as a
// float line. Repeated until stable since RE2 has no lookaround.
func normalizeNumbers(text string) string {
	for {
		next := thousandsRe.ReplaceAllString(text, "$1$2")
		if next == text {
			return next
		}
		text = next
	}
}

func isStopMarker(line string) bool {
	return strings.HasPrefix(strings.TrimLeft(line, "▌ \t"), stopMarker)
}

func blockHasPageFooter(block []string) bool {
	for _, line := range block {
		if pageFooterRe.MatchString(line) {
			return true
		}
	}
	return false
}

func maxFloatLine(lines []string) string {
	best := lines[len(lines)-1]
	bestVal := math.Inf(-1)
	for _, line := range lines {
		v, err := strconv.ParseFloat(line, 64)
		if err != nil {
			continue
		}
		if v > bestVal {
			bestVal = v
			best = line
		}
	}
	return best
}
