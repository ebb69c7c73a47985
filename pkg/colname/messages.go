package colname

import (
	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"

	"github.com/tragoedia0722/colnames/pkg/i18n"
)

// 警告的英文文本
// 参数：%[1]d n_columns，%[2]s column_name，%[3]d n_bytes
func init() {
	args := []string{"n_columns", "column_name"}

	i18n.MustRegister(language.English, MessageASCIICleaned, args, plural.Selectf(1, "%d",
		"=1", "Removed control characters from “%[2]s”.",
		plural.Other, "Removed control characters from %[1]d column names. See column “%[2]s”.",
	))
	i18n.MustRegister(language.English, MessageUnicodeFixed, args, plural.Selectf(1, "%d",
		"=1", "Replaced invalid text in “%[2]s” with “�”.",
		plural.Other, "Replaced invalid text in %[1]d column names with “�”. See column “%[2]s”.",
	))
	i18n.MustRegister(language.English, MessageTruncated, append(args, "n_bytes"), plural.Selectf(1, "%d",
		"=1", "Truncated column “%[2]s” to %[3]d bytes.",
		plural.Other, "Truncated %[1]d column names to %[3]d bytes each. See column “%[2]s”.",
	))
	i18n.MustRegister(language.English, MessageDefaulted, args, plural.Selectf(1, "%d",
		"=1", "Renamed an empty column name to “%[2]s”.",
		plural.Other, "Renamed %[1]d empty column names. See column “%[2]s”.",
	))
	i18n.MustRegister(language.English, MessageNumbered, args, plural.Selectf(1, "%d",
		"=1", "Renamed a duplicate column name to “%[2]s”.",
		plural.Other, "Renamed %[1]d duplicate column names. See column “%[2]s”.",
	))
}
