package models

// FileType 文件类型
type FileType string

const (
	PDF  FileType = "pdf"
	DOCX FileType = "docx"
	Text FileType = "text"
	CSV  FileType = "csv"
	JSON FileType = "json"
)

// MaxExtractedChars caps the text returned from an upload.
const MaxExtractedChars = 8000

const (
	MimePDF  = "application/pdf"
	MimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// UploadedDocument is the transient input of one upload request.
type UploadedDocument struct {
	Content  []byte
	MimeType string
	Filename string
}

// DocumentChunk 文档块
type DocumentChunk struct {
	Content  string                 `json:"content"`
	Metadata map[string]interface{} `json:"metadata"`
}

// ExtractedText 提取结果
type ExtractedText struct {
	Text      string   `json:"text"`
	Format    FileType `json:"-"`
	Truncated bool     `json:"-"`
}

// QAExchange is one recorded question/answer pair.
type QAExchange struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}
