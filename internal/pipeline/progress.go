package pipeline

// Stage is a state of a pipeline run.
type Stage int

const (
	FetchingCaptions Stage = iota
	DownloadingAudio
	ConvertingAudio
	Transcribing
	Summarizing
	Done
	Failed
)

func (s Stage) String() string {
	switch s {
	case FetchingCaptions:
		return "fetching_captions"
	case DownloadingAudio:
		return "downloading_audio"
	case ConvertingAudio:
		return "converting_audio"
	case Transcribing:
		return "transcribing"
	case Summarizing:
		return "summarizing"
	case Done:
		return "done"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Progress is one status update. Final is set on Done and Failed, whose
// Text is the summary or the user-facing error message.
type Progress struct {
	Stage Stage
	Text  string
	Final bool
}

const (
	msgFetchingCaptions = "Attempting to download captions from the YouTube video..."
	msgCaptionsFound    = "Captions found and downloaded. Summarizing the text..."
	msgDownloadingAudio = "No captions found. Downloading audio from the YouTube video..."
	msgConvertingAudio  = "Converting audio to text..."
	msgTranscribing     = "Recognizing speech..."
	msgSummarizing      = "Summarizing the text..."
)
