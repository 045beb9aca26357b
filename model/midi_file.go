package model

// MidiFile represents a MIDI file stored in the midi_files table.
// Records are created by the upload process; this tool only reads them.
type MidiFile struct {
	ID         int64  `gorm:"column:id;primaryKey" json:"id"`
	Filename   string `gorm:"column:filename" json:"filename"`
	Data       string `gorm:"column:data" json:"-"` // base64-encoded payload
	Size       int64  `gorm:"column:size" json:"size"`
	Tracks     int    `gorm:"column:tracks" json:"tracks"`
	UploadedAt string `gorm:"column:uploaded_at" json:"uploadedAt"` // stored as text by the uploader
}

// TableName 指定表名
func (MidiFile) TableName() string {
	return "midi_files"
}

// MidiFileSummary is the (id, filename) pair shown when a selector matches nothing.
type MidiFileSummary struct {
	ID       int64  `gorm:"column:id" json:"id"`
	Filename string `gorm:"column:filename" json:"filename"`
}
