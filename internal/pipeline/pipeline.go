package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/nguyentantai21042004/tubesum/internal/audio"
	"github.com/nguyentantai21042004/tubesum/internal/logger"
	"github.com/nguyentantai21042004/tubesum/internal/video"
)

// Run executes the caption-first fallback chain. Every transient audio file
// created during the run is deleted before Run returns.
func (p *implPipeline) Run(ctx context.Context, ref video.Reference, sink ProgressSink) (string, error) {
	if sink == nil {
		sink = Discard
	}
	if logger.RequestID(ctx) == "" {
		ctx = logger.WithRequestID(ctx, uuid.NewString())
	}

	var downloaded, converted *audio.Asset
	defer func() {
		p.release(ctx, converted)
		p.release(ctx, downloaded)
	}()

	p.logger.Info(ctx, "Pipeline started: %s", ref.URL)

	p.emit(ctx, sink, Progress{Stage: FetchingCaptions, Text: msgFetchingCaptions})
	captionsCtx, cancel := p.stageContext(ctx, p.opts.Timeouts.Captions)
	result := p.captions.Fetch(captionsCtx, ref)
	cancel()

	text := result.Text
	if result.Found {
		p.emit(ctx, sink, Progress{Stage: Summarizing, Text: msgCaptionsFound})
	} else {
		p.emit(ctx, sink, Progress{Stage: DownloadingAudio, Text: msgDownloadingAudio})
		stageCtx, cancel := p.stageContext(ctx, p.opts.Timeouts.Download)
		asset, err := p.acquirer.Download(stageCtx, ref)
		cancel()
		if err != nil {
			return "", p.fail(ctx, sink, downloadError(err))
		}
		downloaded = asset

		p.emit(ctx, sink, Progress{Stage: ConvertingAudio, Text: msgConvertingAudio})
		stageCtx, cancel = p.stageContext(ctx, p.opts.Timeouts.Convert)
		asset, err = p.transcriber.Convert(stageCtx, downloaded)
		cancel()
		if err != nil {
			return "", p.fail(ctx, sink, speechError(err, ConversionFailed))
		}
		converted = asset

		p.emit(ctx, sink, Progress{Stage: Transcribing, Text: msgTranscribing})
		stageCtx, cancel = p.stageContext(ctx, p.opts.Timeouts.Recognize)
		text, err = p.transcriber.Recognize(stageCtx, converted)
		cancel()
		if err != nil {
			return "", p.fail(ctx, sink, speechError(err, ServiceUnavailable))
		}

		p.emit(ctx, sink, Progress{Stage: Summarizing, Text: msgSummarizing})
	}

	stageCtx, cancel := p.stageContext(ctx, p.opts.Timeouts.Summarize)
	summary, err := p.summarizer.Summarize(stageCtx, text, p.opts.Instructions)
	cancel()
	if err != nil {
		return "", p.fail(ctx, sink, completionError(err))
	}

	p.emit(ctx, sink, Progress{Stage: Done, Text: summary, Final: true})
	p.logger.Info(ctx, "Pipeline done: %s (%d chars)", ref.URL, len(summary))
	return summary, nil
}

func (p *implPipeline) fail(ctx context.Context, sink ProgressSink, err *Error) error {
	p.logger.Error(ctx, "Pipeline failed: %v", err)
	p.emit(ctx, sink, Progress{Stage: Failed, Text: err.Message(), Final: true})
	return err
}

// emit delivers an update; a failing or slow sink never affects the run.
func (p *implPipeline) emit(ctx context.Context, sink ProgressSink, update Progress) {
	sendCtx, cancel := p.stageContext(ctx, p.opts.Timeouts.SendUpdate)
	defer cancel()
	if err := sink.Update(sendCtx, update); err != nil {
		p.logger.Warn(ctx, "Progress update %s not delivered: %v", update.Stage, err)
	}
}

func (p *implPipeline) stageContext(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

func (p *implPipeline) release(ctx context.Context, asset *audio.Asset) {
	if asset == nil {
		return
	}
	if err := asset.Release(); err != nil {
		p.logger.Warn(ctx, "Failed to cleanup temp file %s: %v", asset.Path, err)
		return
	}
	p.logger.Debug(ctx, "Cleaned up temp file: %s", asset.Path)
}
