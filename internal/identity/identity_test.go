package identity

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		kind Kind
		want string
	}{
		{
			name: "module from spaced words",
			raw:  "Daily Report Jobs",
			kind: KindModule,
			want: "daily_report_jobs",
		},
		{
			name: "module from camel case",
			raw:  "dailyReportJobs",
			kind: KindModule,
			want: "daily_report_jobs",
		},
		{
			name: "task from spaced words",
			raw:  "daily totals",
			kind: KindTask,
			want: "DailyTotals",
		},
		{
			name: "task from snake case",
			raw:  "daily_totals",
			kind: KindTask,
			want: "DailyTotals",
		},
		{
			name: "segment from mixed punctuation",
			raw:  "Clean-Up: phase 2",
			kind: KindSegment,
			want: "clean_up_phase_2",
		},
		{
			name: "symbols are separators",
			raw:  "a+b",
			kind: KindModule,
			want: "a_b",
		},
		{
			name: "blank module falls back",
			raw:  "   ",
			kind: KindModule,
			want: "untitled",
		},
		{
			name: "blank task falls back",
			raw:  "",
			kind: KindTask,
			want: "Untitled",
		},
		{
			name: "blank segment falls back",
			raw:  "!!!",
			kind: KindSegment,
			want: "segment",
		},
		{
			name: "digit-leading module gets prefix",
			raw:  "7zip",
			kind: KindModule,
			want: "m7zip",
		},
		{
			name: "digit-leading task gets prefix",
			raw:  "2nd pass",
			kind: KindTask,
			want: "T2ndPass",
		},
		{
			name: "reserved module word gets suffix",
			raw:  "type",
			kind: KindModule,
			want: "type_pkg",
		},
		{
			name: "reserved segment word gets suffix",
			raw:  "range",
			kind: KindSegment,
			want: "range_seg",
		},
		{
			name: "non-ascii leading digit gets prefix",
			raw:  "٣abc",
			kind: KindTask,
			want: "T٣abc",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sanitize(tt.raw, tt.kind))
		})
	}
}

func TestSanitizeTruncation(t *testing.T) {
	long := strings.Repeat("ab", 40)

	got := Sanitize(long, KindModule)
	assert.Len(t, got, MaxLength)
	assert.True(t, strings.HasSuffix(got, "_cut"))

	got = Sanitize(long, KindTask)
	assert.Len(t, got, MaxLength)
	assert.True(t, strings.HasSuffix(got, "Cut"))
}

func TestSanitizeTruncationMultibyte(t *testing.T) {
	got := Sanitize(strings.Repeat("é", 60), KindTask)

	assert.True(t, utf8.ValidString(got))
	assert.Len(t, []rune(got), MaxLength)
	assert.True(t, strings.HasSuffix(got, "Cut"))
}

func TestSanitizeIsIdempotent(t *testing.T) {
	for _, raw := range []string{"Daily Totals", "7zip", "type", "clean-up"} {
		for _, kind := range []Kind{KindModule, KindTask, KindSegment} {
			once := Sanitize(raw, kind)
			assert.Equal(t, once, Sanitize(once, kind), "raw=%q kind=%s", raw, kind)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		kind    Kind
		wantErr string
	}{
		{name: "valid module", raw: "analytics", kind: KindModule},
		{name: "valid task", raw: "DailyTotals", kind: KindTask},
		{name: "valid segment", raw: "clean_up", kind: KindSegment},
		{name: "empty", raw: "", kind: KindModule, wantErr: "must not be empty"},
		{name: "whitespace only", raw: "  ", kind: KindTask, wantErr: "must not be empty"},
		{name: "embedded space", raw: "daily totals", kind: KindModule, wantErr: "whitespace"},
		{name: "invalid character", raw: "day-totals", kind: KindSegment, wantErr: "invalid character"},
		{name: "digit start", raw: "7zip", kind: KindModule, wantErr: "start with a digit"},
		{name: "reserved word", raw: "func", kind: KindModule, wantErr: "reserved word"},
		{name: "too long", raw: strings.Repeat("a", MaxLength+1), kind: KindModule, wantErr: "exceeds"},
		{name: "lowercase task", raw: "dailyTotals", kind: KindTask, wantErr: "uppercase"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.raw, tt.kind)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestForMode(t *testing.T) {
	_, err := ForMode("strict").Normalize("daily totals", KindModule)
	assert.Error(t, err)

	got, err := ForMode("lenient").Normalize("daily totals", KindModule)
	require.NoError(t, err)
	assert.Equal(t, "daily_totals", got)

	// Unknown modes fall back to lenient.
	got, err = ForMode("").Normalize("daily totals", KindModule)
	require.NoError(t, err)
	assert.Equal(t, "daily_totals", got)
}
