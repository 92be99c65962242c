package validate

import (
	"fmt"
	"regexp"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	httpURLRe     = regexp.MustCompile(`^https?://.+`)
	githubURLRe   = regexp.MustCompile(`^https?://(www\.)?github\.com/.+`)
	linkedinURLRe = regexp.MustCompile(`^https?://(www\.)?linkedin\.com/.+`)
)

var (
	once    sync.Once
	onceErr error
)

// Register 向 gin 的默认校验器注册业务规则，可重复调用
//
//	http_url     空串或 http(s):// 开头
//	github_url   空串或 github.com 链接
//	linkedin_url 空串或 linkedin.com 链接
func Register() error {
	once.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			onceErr = fmt.Errorf("gin 校验引擎不是 validator/v10")
			return
		}
		onceErr = RegisterOn(v)
	})
	return onceErr
}

// RegisterOn 在指定校验器上注册规则
func RegisterOn(v *validator.Validate) error {
	rules := map[string]*regexp.Regexp{
		"http_url":     httpURLRe,
		"github_url":   githubURLRe,
		"linkedin_url": linkedinURLRe,
	}
	for tag, re := range rules {
		re := re
		err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			s := fl.Field().String()
			return s == "" || re.MatchString(s)
		})
		if err != nil {
			return fmt.Errorf("注册校验规则 %s 失败: %w", tag, err)
		}
	}
	return nil
}
