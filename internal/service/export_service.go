package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"placement-portal/backend/internal/model"
	"placement-portal/backend/internal/repository"
)

// ── 导出模块业务错误 ──

var ErrExportGenerateFail = errors.New("生成 Excel 文件失败")

// exportBatchSize 分批读取档案
const exportBatchSize = 500

// ExportService 导出业务接口
// 导出以 bytes.Buffer 返回，由 Handler 设置响应头后写出
type ExportService interface {
	// ExportStudents 导出全部学生档案为 Excel
	ExportStudents(ctx context.Context) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

var studentExportHeaders = []string{
	"姓名", "邮箱", "院系", "专业", "毕业年份", "CGPA",
	"技能", "完整度", "档案完整", "已认证", "简历认证", "简历链接",
}

// ════════════════════════════════════════════════════════════
// ExportStudents 导出全部学生档案
// ════════════════════════════════════════════════════════════
//
// 单个 Sheet "学生档案"：第 1 行表头，之后每个档案一行

func (s *exportService) ExportStudents(ctx context.Context) (*bytes.Buffer, string, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "学生档案"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	for i, h := range studentExportHeaders {
		f.SetCellValue(sheetName, cell(colName(i), 1), h)
	}
	f.SetCellStyle(sheetName, "A1", cell(colName(len(studentExportHeaders)-1), 1), headerStyle)
	f.SetColWidth(sheetName, "A", "A", 14)
	f.SetColWidth(sheetName, "B", "B", 28)
	f.SetColWidth(sheetName, "C", "D", 20)
	f.SetColWidth(sheetName, "G", "G", 36)
	f.SetColWidth(sheetName, "L", "L", 40)

	row := 2
	for offset := 0; ; offset += exportBatchSize {
		profiles, _, err := s.repo.Profile.List(ctx, nil, repository.Page{Offset: offset, Limit: exportBatchSize})
		if err != nil {
			s.logger.Error("查询学生档案失败", zap.Error(err))
			return nil, "", err
		}
		for i := range profiles {
			writeStudentRow(f, sheetName, row, &profiles[i])
			row++
		}
		if len(profiles) < exportBatchSize {
			break
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("学生档案_%s.xlsx", time.Now().Format("20060102"))
	return buf, filename, nil
}

func writeStudentRow(f *excelize.File, sheet string, row int, p *model.StudentProfile) {
	var name, email, dept string
	if p.User != nil {
		name, email, dept = p.User.Name, p.User.Email, p.User.Department
	}
	values := []interface{}{
		name,
		email,
		dept,
		p.Program,
		"-",
		"-",
		strings.Join(p.Skills, ", "),
		fmt.Sprintf("%d%%", ProfileCompletion(p).Percentage),
		yesNo(p.IsComplete),
		yesNo(p.IsVerified),
		yesNo(p.ResumeVerified),
		p.ResumeURL,
	}
	if p.GraduationYear != nil {
		values[4] = *p.GraduationYear
	}
	if p.CGPA != nil {
		values[5] = *p.CGPA
	}
	for i, v := range values {
		f.SetCellValue(sheet, cell(colName(i), row), v)
	}
}

// ── 辅助函数 ──

func yesNo(b bool) string {
	if b {
		return "是"
	}
	return "否"
}

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
