package colname

// Settings 清理流程的配置
type Settings struct {
	// MaxBytesPerColumnName 输出名称的最大 UTF-8 字节数
	MaxBytesPerColumnName int
}

// DefaultSettings 使用 DefaultMaxBytesPerColumnName 的配置
func DefaultSettings() Settings {
	return Settings{MaxBytesPerColumnName: DefaultMaxBytesPerColumnName}
}

// NewSettings 校验 maxBytes 并返回对应配置
func NewSettings(maxBytes int) (Settings, error) {
	s := Settings{MaxBytesPerColumnName: maxBytes}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate 校验配置能否生成非空名称
// 预算至少要能容纳一位数的生成名 " 1"
func (s Settings) Validate() error {
	if s.MaxBytesPerColumnName < MinMaxBytesPerColumnName {
		return &SettingsError{
			Field: "MaxBytesPerColumnName",
			Value: s.MaxBytesPerColumnName,
			Err:   ErrInvalidMaxBytes,
		}
	}
	return nil
}
