package homepage

import (
	"math"
	"strconv"
	"strings"
)

type countUnit struct {
	size   float64
	suffix string
}

var (
	enUnits = []countUnit{{1e6, "M"}, {1e3, "k"}}
	zhUnits = []countUnit{{1e8, "亿"}, {1e4, "万"}}
)

// FormatCount abbreviates n for display: 1.2k / 3M in English,
// 1.2万 / 3亿 in Chinese. Values below the smallest unit print unchanged.
func FormatCount(n int, lang Lang) string {
	units := enUnits
	if lang == LangZh {
		units = zhUnits
	}
	for _, u := range units {
		if float64(n) >= u.size {
			return oneDecimal(float64(n)/u.size) + u.suffix
		}
	}
	return strconv.Itoa(n)
}

// oneDecimal rounds half away from zero and drops a trailing ".0".
func oneDecimal(v float64) string {
	s := strconv.FormatFloat(math.Round(v*10)/10, 'f', 1, 64)
	return strings.TrimSuffix(s, ".0")
}

// ViewsLabel returns the localized view-count text for a video.
func ViewsLabel(n int, lang Lang) string {
	if lang == LangZh {
		return FormatCount(n, LangZh) + " 播放"
	}
	return FormatCount(n, LangEn) + " views"
}

// PublicationCountLabel returns the localized publication total.
func PublicationCountLabel(n int, lang Lang) string {
	if lang == LangZh {
		return strconv.Itoa(n) + " 篇论文"
	}
	return strconv.Itoa(n) + " publications"
}
