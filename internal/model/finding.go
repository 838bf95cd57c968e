package model

// Span は 1 件の検出範囲を行・桁・バイトオフセットで表します。
// 行と桁は 1 始まり、桁はバイト単位、End は半開区間の終端です。
type Span struct {
	StartLine int `json:"start_line" msgpack:"sl"`
	StartCol  int `json:"start_col" msgpack:"sc"`
	EndLine   int `json:"end_line" msgpack:"el"`
	EndCol    int `json:"end_col" msgpack:"ec"`
	ByteStart int `json:"byte_start" msgpack:"bs"`
	ByteEnd   int `json:"byte_end" msgpack:"be"`
}

// Finding はコメント 1 件・マーカー種別 1 つに対応する診断です。
// Comment はコメント全体、Markers は TODO の出現位置ごとの範囲です（FIXME では空）。
type Finding struct {
	Lint    string `json:"lint"`
	File    string `json:"file"`
	Lang    string `json:"lang,omitempty"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
	Text    string `json:"text"`
	Comment Span   `json:"comment"`
	Markers []Span `json:"markers,omitempty"`

	// Snippet はコメントが掛かる行の原文です（改行なし）。表示用。
	Snippet []string `json:"-"`
}

// Line returns the first line of the enclosing comment.
func (f Finding) Line() int { return f.Comment.StartLine }

// Col returns the column of the first marker, or of the comment for FIXME.
func (f Finding) Col() int {
	if len(f.Markers) > 0 {
		return f.Markers[0].StartCol
	}
	return f.Comment.StartCol
}
