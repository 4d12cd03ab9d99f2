package provider

type Model struct {
	ID string
}

// FileUpload is the upstream's record of an audio sample uploaded for cloning.
type FileUpload struct {
	ID string

	Bytes    int64
	Filename string
}

type Clone struct {
	ID string

	Duplicated bool

	SampleText  string
	SampleAudio []byte
}

type Synthesis struct {
	ID    string
	Model string

	Content     []byte
	ContentType string
}
