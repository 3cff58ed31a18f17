// Package validator 集中定义各实体的字段校验规则。
// 每个校验函数返回 Result（字段名 → 第一条失败原因），为空表示通过；
// 表单逐字段校验与提交时整体校验共用同一套规则。
package validator

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	govalidator "github.com/go-playground/validator/v10"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"

	"college-admin/backend/internal/model"
	apperrors "college-admin/backend/pkg/errors"
)

// Result 字段名（JSON 名）→ 失败原因
type Result map[string]string

// OK 是否全部通过
func (r Result) OK() bool { return len(r) == 0 }

// Err 转为 ValidationError；通过时返回 nil
func (r Result) Err() error { return apperrors.NewValidationError(r) }

// Mode 校验场景
type Mode int

const (
	// ModeCreate 创建：额外校验只在创建时生效的规则（如作业截止日期必须晚于今天）
	ModeCreate Mode = iota
	// ModeUpdate 编辑
	ModeUpdate
)

// 最早注册年份
const minRegistrationYear = 2020

var (
	alphaSpaceRegex = regexp.MustCompile(`^[\p{L} ]+$`)
	// 消息编码会出现在 URL 路径中
	msgCodeRegex = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

	customTexts = map[string]string{
		"nonblank":   "{0}为必填字段",
		"alphaspace": "{0}只能包含字母和空格",
		"regyear":    "{0}必须在2020年到今年之间",
		"datetime":   "{0}的格式必须是YYYY-MM-DD",
		"futuredate": "截止日期必须晚于今天",
		"msgcode":    "{0}只能包含字母、数字、下划线和连字符",
		"required":   "{0}为必填字段",
	}
)

// Validator 实体校验器
type Validator struct {
	validate *govalidator.Validate
	trans    ut.Translator
	now      func() time.Time
}

// New 创建校验器；now 为 nil 时使用 time.Now
func New(now func() time.Time) *Validator {
	if now == nil {
		now = time.Now
	}

	locale := zh.New()
	uni := ut.New(locale, locale)
	trans, _ := uni.GetTranslator("zh")

	v := &Validator{
		validate: govalidator.New(),
		trans:    trans,
		now:      now,
	}
	_ = zh_translations.RegisterDefaultTranslations(v.validate, trans)

	// 错误中使用 JSON 字段名
	v.validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.validate.RegisterValidation("nonblank", func(fl govalidator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = v.validate.RegisterValidation("alphaspace", func(fl govalidator.FieldLevel) bool {
		return alphaSpaceRegex.MatchString(fl.Field().String())
	})
	_ = v.validate.RegisterValidation("msgcode", func(fl govalidator.FieldLevel) bool {
		return msgCodeRegex.MatchString(fl.Field().String())
	})
	_ = v.validate.RegisterValidation("regyear", func(fl govalidator.FieldLevel) bool {
		year := fl.Field().Int()
		return year >= minRegistrationYear && year <= int64(v.now().Year())
	})
	_ = v.validate.RegisterValidation("futuredate", func(fl govalidator.FieldLevel) bool {
		due, err := time.Parse(model.DateLayout, fl.Field().String())
		if err != nil {
			return false
		}
		return due.After(today(v.now()))
	})

	for tag, text := range customTexts {
		v.registerTranslation(tag, text)
	}
	return v
}

func (v *Validator) registerTranslation(tag, text string) {
	_ = v.validate.RegisterTranslation(
		tag, v.trans,
		func(t ut.Translator) error { return t.Add(tag, text, true) },
		func(t ut.Translator, fe govalidator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}

// ────────────────────── 实体校验 ──────────────────────

// Student 校验学生记录
func (v *Validator) Student(s *model.Student) Result {
	return v.check(s)
}

// Course 校验课程记录
func (v *Validator) Course(c *model.Course) Result {
	return v.check(c)
}

// Task 校验作业记录；创建时要求截止日期严格晚于今天
func (v *Validator) Task(t *model.Task, mode Mode) Result {
	res := v.check(t)
	if mode == ModeCreate {
		if _, bad := res["submissionDate"]; !bad {
			if err := v.validate.Var(t.SubmissionDate, "futuredate"); err != nil {
				res["submissionDate"] = v.first(err)
			}
		}
	}
	return res
}

// Grade 校验成绩记录
func (v *Validator) Grade(g *model.Grade) Result {
	return v.check(g)
}

// Message 校验消息记录
func (v *Validator) Message(m *model.Message) Result {
	return v.check(m)
}

// Check 按记录类型分派整体校验；未知类型返回空结果。
// record 为 *model.Student / *model.Course / *model.Task / *model.Grade / *model.Message
func (v *Validator) Check(record any, mode Mode) Result {
	switch r := record.(type) {
	case *model.Student:
		return v.Student(r)
	case *model.Course:
		return v.Course(r)
	case *model.Task:
		return v.Task(r, mode)
	case *model.Grade:
		return v.Grade(r)
	case *model.Message:
		return v.Message(r)
	}
	return Result{}
}

// Field 单字段校验（失焦时使用），通过时返回空字符串
func (v *Validator) Field(record any, field string, mode Mode) string {
	return v.Check(record, mode)[field]
}

// ── 内部辅助方法 ──

// check 执行结构体标签校验，每个字段只保留第一条失败原因
func (v *Validator) check(record any) Result {
	res := Result{}
	err := v.validate.Struct(record)
	if err == nil {
		return res
	}
	var errs govalidator.ValidationErrors
	if !errors.As(err, &errs) {
		res["_"] = err.Error()
		return res
	}
	for _, fe := range errs {
		name := fieldName(fe)
		if _, seen := res[name]; seen {
			continue
		}
		res[name] = fe.Translate(v.trans)
	}
	return res
}

func (v *Validator) first(err error) string {
	var errs govalidator.ValidationErrors
	if errors.As(err, &errs) && len(errs) > 0 {
		return errs[0].Translate(v.trans)
	}
	return err.Error()
}

// fieldName 去掉命名空间中的结构体名前缀与元素下标，如 Student.courses[0] → courses
func fieldName(fe govalidator.FieldError) string {
	name := fe.Namespace()
	if i := strings.Index(name, "."); i >= 0 {
		name = name[i+1:]
	} else {
		name = fe.Field()
	}
	if i := strings.Index(name, "["); i >= 0 {
		name = name[:i]
	}
	return name
}

func today(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
