package recognizer

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/JIoffe/LearnAI-Bootcamp/internal/bot/model"
	logx "github.com/JIoffe/LearnAI-Bootcamp/pkg/logger"
)

// Delimiters of the classifier's record format. The model emits one record
// per line, e.g.:
//
//	("intent"<||>SearchPics<||>0.92)##
//	("entity"<||>facet<||>mountains<||>0.88)##
//	<|COMPLETE|>
const (
	recDelim = "##"
	tupDelim = "<||>"
	endDelim = "<|COMPLETE|>"
)

// basic safety limits to avoid pathological model output
const (
	maxContentLen = 64 * 1024
	maxRecords    = 50
	maxTupleLen   = 2 * 1024
	maxErrSnippet = 120
)

type rawTuple struct {
	Type  string
	Parts []string
}

func parseRawTuple(s string) (*rawTuple, error) {
	if s == "" {
		return nil, fmt.Errorf("empty tuple")
	}
	if len(s) > maxTupleLen {
		return nil, fmt.Errorf("tuple too large")
	}

	s = strings.TrimSpace(s)
	if len(s) < 2 || s[0] != '(' || s[len(s)-1] != ')' {
		return nil, fmt.Errorf("invalid tuple parens")
	}
	inner := s[1 : len(s)-1]
	parts := strings.SplitN(inner, tupDelim, 4)
	if len(parts) < 3 {
		return nil, fmt.Errorf("invalid tuple parts")
	}
	return &rawTuple{Type: strings.Trim(strings.TrimSpace(parts[0]), `"`), Parts: parts}, nil
}

func parseConfidence(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("confidence parse: %w", err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 || v > 1 {
		return 0, fmt.Errorf("confidence out of range")
	}
	return v, nil
}

// ParseClassifierResponse turns the model's delimited records into a single
// IntentResult: the highest-confidence intent plus one value per entity slot.
// Malformed records are skipped, never fatal; an output with no usable intent
// record at all is an error.
func ParseClassifierResponse(content string) (*model.IntentResult, error) {
	if len(content) > maxContentLen {
		logx.Warn().
			Str("component", "nlu_parser").
			Int("orig_len", len(content)).
			Msg("classifier output truncated due to size limit")
		content = content[:maxContentLen]
	}
	if idx := strings.Index(content, endDelim); idx >= 0 {
		content = content[:idx]
	}

	var (
		best       *model.IntentResult
		entities   map[string]string
		entityConf = map[string]float64{}
		processed  int
	)

	for _, rec := range strings.Split(content, recDelim) {
		if processed >= maxRecords {
			logx.Warn().Str("component", "nlu_parser").Msg("record processing capped")
			break
		}
		rec = strings.TrimSpace(rec)
		if rec == "" {
			continue
		}
		processed++

		rt, err := parseRawTuple(rec)
		if err != nil {
			logx.Debug().Str("component", "nlu_parser").Str("record", safeSnippet(rec)).Msg("skipping malformed record")
			continue
		}

		switch rt.Type {
		case "intent":
			name := strings.TrimSpace(rt.Parts[1])
			if name == "" || !utf8.ValidString(name) {
				continue
			}
			conf, err := parseConfidence(rt.Parts[2])
			if err != nil {
				continue
			}
			if best == nil || conf > best.Confidence {
				best = &model.IntentResult{Name: name, Confidence: conf}
			}

		case "entity":
			if len(rt.Parts) < 4 {
				continue
			}
			slot := strings.TrimSpace(rt.Parts[1])
			value := strings.TrimSpace(rt.Parts[2])
			if slot == "" || value == "" || !utf8.ValidString(slot) || !utf8.ValidString(value) {
				continue
			}
			conf, err := parseConfidence(rt.Parts[3])
			if err != nil {
				continue
			}
			if conf > entityConf[slot] {
				entityConf[slot] = conf
				if entities == nil {
					entities = map[string]string{}
				}
				entities[slot] = value
			}

		default:
			// unknown record type, ignore
		}
	}

	if best == nil {
		return nil, fmt.Errorf("classifier output contained no intent record")
	}
	best.Entities = entities
	return best, nil
}

func safeSnippet(s string) string {
	s = strings.TrimSpace(s)
	if len(s) <= maxErrSnippet {
		return s
	}
	return s[:maxErrSnippet]
}
