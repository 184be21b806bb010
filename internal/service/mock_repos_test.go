package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"apexlist/backend/internal/model"
	"apexlist/backend/internal/repository"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		user.UserID = "user-" + user.Username
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) List(_ context.Context, _, _ int) ([]model.User, int64, error) {
	var result []model.User
	for _, u := range m.users {
		result = append(result, *u)
	}
	return result, int64(len(result)), nil
}

// ── Mock LevelRepository ──

type mockLevelRepo struct {
	levels map[string]*model.Level
}

func newMockLevelRepo() *mockLevelRepo {
	return &mockLevelRepo{levels: make(map[string]*model.Level)}
}

func (m *mockLevelRepo) Create(_ context.Context, level *model.Level) error {
	m.levels[level.LevelID] = level
	return nil
}

func (m *mockLevelRepo) GetByID(_ context.Context, id string) (*model.Level, error) {
	if l, ok := m.levels[id]; ok {
		return l, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockLevelRepo) List(_ context.Context, listKey string) ([]model.Level, error) {
	var result []model.Level
	for _, l := range m.levels {
		if listKey != "" && l.ListKey != listKey {
			continue
		}
		result = append(result, *l)
	}
	return result, nil
}

// ── Mock SubmissionRepository ──

type mockSubmissionRepo struct {
	subs map[string]*model.Submission
	seq  int
}

func newMockSubmissionRepo() *mockSubmissionRepo {
	return &mockSubmissionRepo{subs: make(map[string]*model.Submission)}
}

func (m *mockSubmissionRepo) Create(_ context.Context, sub *model.Submission) error {
	m.seq++
	if sub.SubmissionID == "" {
		sub.SubmissionID = fmt.Sprintf("sub-%03d", m.seq)
	}
	if sub.CreatedAt.IsZero() {
		sub.CreatedAt = time.Now()
	}
	cp := *sub
	m.subs[sub.SubmissionID] = &cp
	return nil
}

func (m *mockSubmissionRepo) GetByID(_ context.Context, id string) (*model.Submission, error) {
	if s, ok := m.subs[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSubmissionRepo) GetByIDForUpdate(ctx context.Context, id string) (*model.Submission, error) {
	return m.GetByID(ctx, id)
}

func (m *mockSubmissionRepo) GetActiveByUserAndLevel(_ context.Context, userID, levelID string) (*model.Submission, error) {
	for _, s := range m.subs {
		if s.SubmittedBy == userID && s.LevelID == levelID {
			cp := *s
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// sortByClaimOrder 复刻认领全序：priority 降序、created_at 升序、submission_id 升序
func sortByClaimOrder(subs []*model.Submission) {
	sort.Slice(subs, func(i, j int) bool {
		a, b := subs[i], subs[j]
		if a.Priority != b.Priority {
			return a.Priority
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.SubmissionID < b.SubmissionID
	})
}

func (m *mockSubmissionRepo) pendingOf(listKey string) []*model.Submission {
	var result []*model.Submission
	for _, s := range m.subs {
		if s.Status != model.SubmissionStatusPending {
			continue
		}
		if listKey != "" && s.ListKey != listKey {
			continue
		}
		result = append(result, s)
	}
	sortByClaimOrder(result)
	return result
}

func (m *mockSubmissionRepo) ClaimNext(_ context.Context, listKey string) (*model.Submission, error) {
	pending := m.pendingOf(listKey)
	if len(pending) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *pending[0]
	return &cp, nil
}

func (m *mockSubmissionRepo) UpdateStatus(_ context.Context, sub *model.Submission) error {
	stored, ok := m.subs[sub.SubmissionID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	stored.Status = sub.Status
	stored.ReviewerID = sub.ReviewerID
	stored.ReviewerNotes = sub.ReviewerNotes
	stored.Locked = sub.Locked
	stored.Priority = sub.Priority
	stored.UpdatedAt = time.Now()
	return nil
}

func (m *mockSubmissionRepo) Delete(_ context.Context, id string) error {
	delete(m.subs, id)
	return nil
}

func (m *mockSubmissionRepo) CountPendingAhead(_ context.Context, sub *model.Submission) (int64, error) {
	var count int64
	for _, pending := range m.pendingOf(sub.ListKey) {
		if pending.SubmissionID == sub.SubmissionID {
			break
		}
		count++
	}
	return count, nil
}

func (m *mockSubmissionRepo) CountByStatus(_ context.Context, listKey, status string) (int64, error) {
	var count int64
	for _, s := range m.subs {
		if s.Status != status {
			continue
		}
		if listKey != "" && s.ListKey != listKey {
			continue
		}
		count++
	}
	return count, nil
}

func (m *mockSubmissionRepo) OldestPendingAt(_ context.Context, listKey string) (*time.Time, error) {
	var oldest *time.Time
	for _, s := range m.subs {
		if s.Status != model.SubmissionStatusPending {
			continue
		}
		if listKey != "" && s.ListKey != listKey {
			continue
		}
		t := s.CreatedAt
		if oldest == nil || t.Before(*oldest) {
			oldest = &t
		}
	}
	return oldest, nil
}

func (m *mockSubmissionRepo) ListPending(_ context.Context, listKey string, offset, limit int) ([]model.Submission, int64, error) {
	pending := m.pendingOf(listKey)
	total := int64(len(pending))

	if offset >= len(pending) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(pending) {
		end = len(pending)
	}

	var result []model.Submission
	for _, s := range pending[offset:end] {
		result = append(result, *s)
	}
	return result, total, nil
}

func (m *mockSubmissionRepo) ListByUser(_ context.Context, userID string) ([]model.Submission, error) {
	var result []model.Submission
	for _, s := range m.subs {
		if s.SubmittedBy == userID {
			result = append(result, *s)
		}
	}
	return result, nil
}

// ── Mock RecordRepository ──

type mockRecordRepo struct {
	records map[string]*model.Record
	seq     int
}

func newMockRecordRepo() *mockRecordRepo {
	return &mockRecordRepo{records: make(map[string]*model.Record)}
}

func (m *mockRecordRepo) Create(_ context.Context, record *model.Record) error {
	m.seq++
	if record.RecordID == "" {
		record.RecordID = fmt.Sprintf("rec-%03d", m.seq)
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}
	cp := *record
	m.records[record.RecordID] = &cp
	return nil
}

func (m *mockRecordRepo) GetByID(_ context.Context, id string) (*model.Record, error) {
	if r, ok := m.records[id]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRecordRepo) GetByUserAndLevel(_ context.Context, userID, levelID string) (*model.Record, error) {
	for _, r := range m.records {
		if r.SubmittedBy == userID && r.LevelID == levelID {
			cp := *r
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRecordRepo) GetByUserAndLevelForUpdate(ctx context.Context, userID, levelID string) (*model.Record, error) {
	return m.GetByUserAndLevel(ctx, userID, levelID)
}

func (m *mockRecordRepo) UpdateMutable(_ context.Context, record *model.Record) error {
	stored, ok := m.records[record.RecordID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	stored.Mobile = record.Mobile
	stored.LDMID = record.LDMID
	stored.VideoURL = record.VideoURL
	stored.RawURL = record.RawURL
	stored.ModMenu = record.ModMenu
	stored.UserNotes = record.UserNotes
	stored.ReviewerID = record.ReviewerID
	stored.ReviewerNotes = record.ReviewerNotes
	stored.CompletionTime = record.CompletionTime
	stored.UpdatedAt = time.Now()
	return nil
}

func (m *mockRecordRepo) ListByList(_ context.Context, listKey string) ([]model.Record, error) {
	var result []model.Record
	for _, r := range m.records {
		if listKey != "" && r.ListKey != listKey {
			continue
		}
		result = append(result, *r)
	}
	return result, nil
}

func (m *mockRecordRepo) ListByUser(_ context.Context, userID string) ([]model.Record, error) {
	var result []model.Record
	for _, r := range m.records {
		if r.SubmittedBy == userID {
			result = append(result, *r)
		}
	}
	return result, nil
}

// ── Mock SubmissionHistoryRepository ──

type mockHistoryRepo struct {
	entries []model.SubmissionHistory
	seq     int
}

func newMockHistoryRepo() *mockHistoryRepo {
	return &mockHistoryRepo{}
}

func (m *mockHistoryRepo) Create(_ context.Context, entry *model.SubmissionHistory) error {
	m.seq++
	if entry.HistoryID == "" {
		entry.HistoryID = fmt.Sprintf("hist-%03d", m.seq)
	}
	m.entries = append(m.entries, *entry)
	return nil
}

func (m *mockHistoryRepo) ListBySubmission(_ context.Context, submissionID string) ([]model.SubmissionHistory, error) {
	var result []model.SubmissionHistory
	for _, e := range m.entries {
		if e.SubmissionID == submissionID {
			result = append(result, e)
		}
	}
	return result, nil
}

// ── Mock ShiftRepository ──

type mockShiftRepo struct {
	shifts map[string]*model.Shift
	seq    int
}

func newMockShiftRepo() *mockShiftRepo {
	return &mockShiftRepo{shifts: make(map[string]*model.Shift)}
}

func (m *mockShiftRepo) Create(_ context.Context, shift *model.Shift) error {
	m.seq++
	if shift.ShiftID == "" {
		shift.ShiftID = fmt.Sprintf("shift-%03d", m.seq)
	}
	cp := *shift
	m.shifts[shift.ShiftID] = &cp
	return nil
}

func (m *mockShiftRepo) GetByID(_ context.Context, id string) (*model.Shift, error) {
	if s, ok := m.shifts[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockShiftRepo) GetRunningByUserAt(_ context.Context, userID string, at time.Time) (*model.Shift, error) {
	for _, s := range m.shifts {
		if s.UserID == userID && s.Status == model.ShiftStatusRunning && s.Covers(at) {
			cp := *s
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockShiftRepo) UpdateProgress(_ context.Context, shift *model.Shift) error {
	stored, ok := m.shifts[shift.ShiftID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	stored.CompletedCount = shift.CompletedCount
	stored.Status = shift.Status
	return nil
}

func (m *mockShiftRepo) ExistsForUserAndStart(_ context.Context, userID string, startAt time.Time) (bool, error) {
	for _, s := range m.shifts {
		if s.UserID == userID && s.StartAt.Equal(startAt) {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockShiftRepo) ListByUser(_ context.Context, userID string) ([]model.Shift, error) {
	var result []model.Shift
	for _, s := range m.shifts {
		if s.UserID == userID {
			result = append(result, *s)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StartAt.Before(result[j].StartAt) })
	return result, nil
}

func (m *mockShiftRepo) ExpireOverdue(_ context.Context, now time.Time) (int64, error) {
	var affected int64
	for _, s := range m.shifts {
		if s.Status == model.ShiftStatusRunning && !s.EndAt.After(now) {
			s.Status = model.ShiftStatusExpired
			affected++
		}
	}
	return affected, nil
}

// ── Mock ShiftTemplateRepository ──

type mockShiftTemplateRepo struct {
	templates map[string]*model.RecurringShiftTemplate
	seq       int
}

func newMockShiftTemplateRepo() *mockShiftTemplateRepo {
	return &mockShiftTemplateRepo{templates: make(map[string]*model.RecurringShiftTemplate)}
}

func (m *mockShiftTemplateRepo) Create(_ context.Context, tpl *model.RecurringShiftTemplate) error {
	m.seq++
	if tpl.TemplateID == "" {
		tpl.TemplateID = fmt.Sprintf("tpl-%03d", m.seq)
	}
	cp := *tpl
	m.templates[tpl.TemplateID] = &cp
	return nil
}

func (m *mockShiftTemplateRepo) GetByID(_ context.Context, id string) (*model.RecurringShiftTemplate, error) {
	if t, ok := m.templates[id]; ok {
		cp := *t
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockShiftTemplateRepo) List(_ context.Context) ([]model.RecurringShiftTemplate, error) {
	var result []model.RecurringShiftTemplate
	for _, t := range m.templates {
		result = append(result, *t)
	}
	return result, nil
}

func (m *mockShiftTemplateRepo) ListByWeekday(_ context.Context, weekday int) ([]model.RecurringShiftTemplate, error) {
	var result []model.RecurringShiftTemplate
	for _, t := range m.templates {
		if t.Weekday == weekday {
			result = append(result, *t)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].TemplateID < result[j].TemplateID })
	return result, nil
}

func (m *mockShiftTemplateRepo) Delete(_ context.Context, id string) error {
	delete(m.templates, id)
	return nil
}

// ── Mock NotificationRepository ──

type mockNotificationRepo struct {
	notifications []*model.Notification
	seq           int
}

func newMockNotificationRepo() *mockNotificationRepo {
	return &mockNotificationRepo{}
}

func (m *mockNotificationRepo) Create(_ context.Context, n *model.Notification) error {
	m.seq++
	if n.NotificationID == "" {
		n.NotificationID = fmt.Sprintf("notif-%03d", m.seq)
	}
	cp := *n
	m.notifications = append(m.notifications, &cp)
	return nil
}

func (m *mockNotificationRepo) ListByUser(_ context.Context, userID string, offset, limit int) ([]model.Notification, int64, error) {
	var all []model.Notification
	for _, n := range m.notifications {
		if n.UserID == userID {
			all = append(all, *n)
		}
	}
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (m *mockNotificationRepo) CountUnread(_ context.Context, userID string) (int64, error) {
	var count int64
	for _, n := range m.notifications {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (m *mockNotificationRepo) MarkRead(_ context.Context, notificationID, userID string) (int64, error) {
	for _, n := range m.notifications {
		if n.NotificationID == notificationID && n.UserID == userID && !n.IsRead {
			n.IsRead = true
			return 1, nil
		}
	}
	return 0, nil
}

func (m *mockNotificationRepo) MarkAllRead(_ context.Context, userID string) error {
	for _, n := range m.notifications {
		if n.UserID == userID {
			n.IsRead = true
		}
	}
	return nil
}

// ── Mock SubmissionGateRepository ──

type mockGateRepo struct {
	log []*model.SubmissionGate
}

func newMockGateRepo() *mockGateRepo {
	return &mockGateRepo{}
}

func (m *mockGateRepo) Append(_ context.Context, gate *model.SubmissionGate) error {
	gate.GateID = int64(len(m.log) + 1)
	if gate.CreatedAt.IsZero() {
		gate.CreatedAt = time.Now()
	}
	cp := *gate
	m.log = append(m.log, &cp)
	return nil
}

func (m *mockGateRepo) Latest(_ context.Context) (*model.SubmissionGate, error) {
	if len(m.log) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *m.log[len(m.log)-1]
	return &cp, nil
}

// ── 聚合辅助 ──

// testRepos 聚合所有 mock repo 便于 seed 数据
type testRepos struct {
	user          *mockUserRepo
	level         *mockLevelRepo
	submission    *mockSubmissionRepo
	record        *mockRecordRepo
	history       *mockHistoryRepo
	shift         *mockShiftRepo
	shiftTemplate *mockShiftTemplateRepo
	notification  *mockNotificationRepo
	gate          *mockGateRepo
}

func newTestRepos() *testRepos {
	return &testRepos{
		user:          newMockUserRepo(),
		level:         newMockLevelRepo(),
		submission:    newMockSubmissionRepo(),
		record:        newMockRecordRepo(),
		history:       newMockHistoryRepo(),
		shift:         newMockShiftRepo(),
		shiftTemplate: newMockShiftTemplateRepo(),
		notification:  newMockNotificationRepo(),
		gate:          newMockGateRepo(),
	}
}

func (r *testRepos) toRepository() *repository.Repository {
	return &repository.Repository{
		User:          r.user,
		Level:         r.level,
		Submission:    r.submission,
		Record:        r.record,
		History:       r.history,
		Shift:         r.shift,
		ShiftTemplate: r.shiftTemplate,
		Notification:  r.notification,
		Gate:          r.gate,
	}
}

