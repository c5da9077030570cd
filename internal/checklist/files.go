package checklist

import (
	"context"
	"fmt"

	"github.com/nhle/loan-checklist/internal/model"
)

// AddFiles uploads a batch of files to the item. Each file is uploaded
// independently; the ones that succeed are attached to the item and
// mirrored as loan documents even when others fail. A single activity
// entry covers the batch. If any file failed the item is returned along
// with an *UploadError.
//
// An empty category derives the document category from the item.
func (e *Engine) AddFiles(
	ctx context.Context,
	itemID string,
	category model.DocumentCategory,
	files []model.UploadFile,
) (*model.ChecklistItem, error) {
	if e.files == nil {
		return nil, ErrNoFileStorage
	}
	item, actor, err := e.load(ctx, itemID)
	if err != nil {
		return nil, err
	}

	var (
		added    []model.FileRef
		failures []FileFailure
	)
	for _, f := range files {
		url, err := e.files.Upload(ctx, f)
		if err != nil {
			e.logger.Warn("file upload failed",
				"loan_id", item.LoanID, "item_id", item.ID, "file_name", f.Name, "error", err)
			failures = append(failures, FileFailure{FileName: f.Name, Err: err})
			continue
		}
		added = append(added, model.FileRef{
			FileURL:      url,
			FileName:     f.Name,
			UploadedBy:   actor.ID,
			UploadedDate: e.now().UTC(),
		})
	}

	if len(added) > 0 {
		item.UploadedFiles = append(item.UploadedFiles, added...)
		e.record(item, actor, model.ActionFileUploaded, fmt.Sprintf("Uploaded %d file(s)", len(added)))
		if err := e.save(ctx, item); err != nil {
			return nil, err
		}

		for _, ref := range added {
			if _, err := e.mirror.RecordUpload(ctx, item, ref, category); err != nil {
				e.logger.Error("mirroring uploaded file failed",
					"loan_id", item.LoanID, "item_id", item.ID, "file_name", ref.FileName, "error", err)
			}
		}
		e.publish(EventDocumentsChanged, item.LoanID, item.ID)
	}

	if len(failures) > 0 {
		return item, &UploadError{Failures: failures}
	}
	return item, nil
}

// RemoveFile detaches the file at index from the item and deletes the
// loan documents that point at it.
func (e *Engine) RemoveFile(ctx context.Context, itemID string, index int) (*model.ChecklistItem, error) {
	item, actor, err := e.load(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(item.UploadedFiles) {
		return nil, fmt.Errorf("file %d of item %s: %w", index, itemID, ErrFileIndexOutOfRange)
	}

	removed := item.UploadedFiles[index]
	if _, err := e.mirror.RemoveFile(ctx, item, removed.FileURL); err != nil {
		return nil, err
	}

	item.UploadedFiles = append(item.UploadedFiles[:index:index], item.UploadedFiles[index+1:]...)
	e.record(item, actor, model.ActionFileRemoved, fmt.Sprintf("Removed file '%s'", removed.FileName))
	if err := e.save(ctx, item); err != nil {
		return nil, err
	}
	e.publish(EventDocumentsChanged, item.LoanID, item.ID)
	return item, nil
}
