package service

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"apexlist/backend/internal/model"
)

func setupTestExportService() (ExportService, *testRepos) {
	repos := newTestRepos()
	svc := NewExportService(repos.toRepository(), zap.NewNop())
	return svc, repos
}

func TestExportService_ExportRecordsXLSX(t *testing.T) {
	svc, repos := setupTestExportService()

	repos.record.records["rec-1"] = &model.Record{
		RecordID:       "rec-1",
		LevelID:        "lv-1",
		ListKey:        model.ListClassic,
		SubmittedBy:    "player-1",
		VideoURL:       "https://example.com/v1",
		ReviewerID:     "mod-1",
		CompletionTime: 95000,
	}
	repos.record.records["rec-2"] = &model.Record{
		RecordID:    "rec-2",
		LevelID:     "lv-2",
		ListKey:     model.ListPlatformer,
		SubmittedBy: "player-2",
		VideoURL:    "https://example.com/v2",
		ReviewerID:  "mod-1",
	}

	data, filename, err := svc.ExportRecordsXLSX(context.Background(), model.ListClassic)
	if err != nil {
		t.Fatalf("ExportRecordsXLSX 失败: %v", err)
	}
	if !strings.HasPrefix(filename, "records_classic_") || !strings.HasSuffix(filename, ".xlsx") {
		t.Errorf("文件名格式不正确: %s", filename)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("导出内容不是合法 xlsx: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Records")
	if err != nil {
		t.Fatalf("读取工作表失败: %v", err)
	}
	// 表头 + 仅 classic 榜单的 1 条记录
	if len(rows) != 2 {
		t.Fatalf("应有表头加 1 行数据，实际 %d 行", len(rows))
	}
	if rows[0][0] != recordExportHeaders[0] {
		t.Errorf("表头不正确: %v", rows[0])
	}
	if rows[1][0] != "rec-1" {
		t.Errorf("数据行应为 classic 榜单记录，实际 %v", rows[1])
	}
}

func TestExportService_ExportRecordsXLSX_Empty(t *testing.T) {
	svc, _ := setupTestExportService()

	data, _, err := svc.ExportRecordsXLSX(context.Background(), model.ListClassic)
	if err != nil {
		t.Fatalf("空榜单导出不应失败: %v", err)
	}
	if len(data) == 0 {
		t.Errorf("空榜单也应产出合法文件")
	}
}

