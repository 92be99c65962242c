package main

import (
	"context"
	_ "embed"
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"placement-portal/backend/internal/model"
	"placement-portal/backend/internal/repository"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// Catalog 种子目录文件结构
type Catalog struct {
	Departments []DepartmentSeed `yaml:"departments"`
	// Skills 分类 → 技能名
	Skills map[string][]string `yaml:"skills"`
}

// DepartmentSeed 院系种子
type DepartmentSeed struct {
	Name        string   `yaml:"name"`
	Code        string   `yaml:"code"`
	Description string   `yaml:"description"`
	Programs    []string `yaml:"programs"`
}

// loadCatalog 读取目录文件，path 为空时使用内置目录
func loadCatalog(path string) (*Catalog, error) {
	data := defaultCatalog
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("读取目录文件失败: %w", err)
		}
		data = b
	}
	return parseCatalog(data)
}

// parseCatalog 解析并规范化：院系代码转大写，技能名转小写，重复项只保留第一个
func parseCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("解析目录文件失败: %w", err)
	}

	seenCode := make(map[string]bool)
	depts := make([]DepartmentSeed, 0, len(c.Departments))
	for i, d := range c.Departments {
		d.Name = strings.TrimSpace(d.Name)
		d.Code = strings.ToUpper(strings.TrimSpace(d.Code))
		if d.Name == "" || d.Code == "" {
			return nil, fmt.Errorf("第 %d 个院系缺少 name 或 code", i+1)
		}
		if seenCode[d.Code] {
			continue
		}
		seenCode[d.Code] = true
		depts = append(depts, d)
	}
	c.Departments = depts

	skills := make(map[string][]string, len(c.Skills))
	seenSkill := make(map[string]bool)
	// 分类按名称排序，跨分类重复时结果稳定
	for _, category := range slices.Sorted(maps.Keys(c.Skills)) {
		names := c.Skills[category]
		if !slices.Contains(model.SkillCategories, category) {
			return nil, fmt.Errorf("未知技能分类: %s", category)
		}
		for _, n := range names {
			n = strings.ToLower(strings.TrimSpace(n))
			if n == "" || seenSkill[n] {
				continue
			}
			seenSkill[n] = true
			skills[category] = append(skills[category], n)
		}
	}
	c.Skills = skills

	return &c, nil
}

// applyCatalog 按 code / name 幂等写入院系与技能，已存在的记录更新描述信息
func applyCatalog(ctx context.Context, repo *repository.Repository, c *Catalog, logger *zap.Logger) error {
	existingDepts, err := repo.Department.List(ctx, false)
	if err != nil {
		return fmt.Errorf("查询院系失败: %w", err)
	}
	byCode := make(map[string]*model.Department, len(existingDepts))
	for i := range existingDepts {
		byCode[existingDepts[i].Code] = &existingDepts[i]
	}

	created, updated := 0, 0
	for _, d := range c.Departments {
		if cur, ok := byCode[d.Code]; ok {
			cur.Name = d.Name
			if d.Description != "" {
				cur.Description = d.Description
			}
			if len(d.Programs) > 0 {
				cur.Programs = d.Programs
			}
			if err := repo.Department.Update(ctx, cur); err != nil {
				return fmt.Errorf("更新院系 %s 失败: %w", d.Code, err)
			}
			updated++
			continue
		}
		dept := &model.Department{
			Name:        d.Name,
			Code:        d.Code,
			Description: d.Description,
			Programs:    d.Programs,
			IsActive:    true,
		}
		if err := repo.Department.Create(ctx, dept); err != nil {
			return fmt.Errorf("创建院系 %s 失败: %w", d.Code, err)
		}
		created++
	}
	logger.Info("院系目录已同步", zap.Int("created", created), zap.Int("updated", updated))

	existingSkills, err := repo.Skill.List(ctx, nil)
	if err != nil {
		return fmt.Errorf("查询技能失败: %w", err)
	}
	byName := make(map[string]*model.Skill, len(existingSkills))
	for i := range existingSkills {
		byName[existingSkills[i].Name] = &existingSkills[i]
	}

	created, updated = 0, 0
	for category, names := range c.Skills {
		for _, n := range names {
			if cur, ok := byName[n]; ok {
				if cur.Category == category {
					continue
				}
				cur.Category = category
				if err := repo.Skill.Update(ctx, cur); err != nil {
					return fmt.Errorf("更新技能 %s 失败: %w", n, err)
				}
				updated++
				continue
			}
			if err := repo.Skill.Create(ctx, &model.Skill{Name: n, Category: category, IsActive: true}); err != nil {
				return fmt.Errorf("创建技能 %s 失败: %w", n, err)
			}
			created++
		}
	}
	logger.Info("技能目录已同步", zap.Int("created", created), zap.Int("updated", updated))

	return nil
}
