package parser

import "regexp"

var (
	// TitleRegex は "# 祭り名" 形式のタイトル行をキャプチャします。
	TitleRegex = regexp.MustCompile(`^#\s+(.+)`)

	// SectionRegex は "## 概要" のようなセクション区切り行をキャプチャします。
	SectionRegex = regexp.MustCompile(`^##\s+(.+)`)

	// FieldRegex は "- key: value" 形式のフィールド行をキャプチャします。
	FieldRegex = regexp.MustCompile(`^\s*-\s*([a-zA-Z_]+):\s*(.+)`)
)
