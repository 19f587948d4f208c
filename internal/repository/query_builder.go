package repository

import (
	"regexp"
	"strconv"
	"strings"

	"gorm.io/gorm"
)

// 查询元参数键，不参与等值过滤
var queryMetaKeys = map[string]struct{}{
	"sort":       {},
	"page":       {},
	"limit":      {},
	"fields":     {},
	"searchTerm": {},
}

const (
	defaultSortField = "created_at"
	defaultPage      = 1
	defaultLimit     = 10
)

// 过滤与排序键只接受转换后的合法列标识符
var columnNamePattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// PageMeta 分页元信息
type PageMeta struct {
	Page      int   `json:"page"`
	Limit     int   `json:"limit"`
	Total     int64 `json:"total"`
	TotalPage int   `json:"totalPage"`
}

// QueryBuilder 通用列表查询构造器。
// 在同一组检索条件上维护数据查询与计数查询两条链，
// Search/Filter 同时作用于两者，Sort/Fields/Paginate 只作用于数据查询，
// 因此 Meta 统计的是未分页的命中总数。
type QueryBuilder struct {
	query      *gorm.DB
	countQuery *gorm.DB
	params     map[string]string
}

// NewQueryBuilder 创建查询构造器，query 需要已绑定模型。
func NewQueryBuilder(query *gorm.DB, params map[string]string) *QueryBuilder {
	if params == nil {
		params = map[string]string{}
	}
	return &QueryBuilder{
		query:      query.Session(&gorm.Session{}),
		countQuery: query.Session(&gorm.Session{}),
		params:     params,
	}
}

// Search 在给定列上做大小写不敏感的子串匹配（OR 连接）。
func (qb *QueryBuilder) Search(columns ...string) *QueryBuilder {
	term := strings.TrimSpace(qb.params["searchTerm"])
	if term == "" || len(columns) == 0 {
		return qb
	}
	condition, argCount := buildLikeCondition(qb.query, columns)
	if argCount == 0 {
		return qb
	}
	args := repeatLikeArgs("%"+term+"%", argCount)
	qb.query = qb.query.Where(condition, args...)
	qb.countQuery = qb.countQuery.Where(condition, args...)
	return qb
}

// Filter 对所有非元参数键做等值过滤。
// 纯数字字符串按数值比较，非法列名直接丢弃。
func (qb *QueryBuilder) Filter() *QueryBuilder {
	for key, value := range qb.params {
		if _, reserved := queryMetaKeys[key]; reserved {
			continue
		}
		column := camelToSnake(key)
		if !columnNamePattern.MatchString(column) {
			continue
		}
		var arg interface{} = value
		if number, ok := parseNumeric(value); ok {
			arg = number
		}
		qb.query = qb.query.Where(column+" = ?", arg)
		qb.countQuery = qb.countQuery.Where(column+" = ?", arg)
	}
	return qb
}

// Sort 应用排序，缺省按创建时间倒序。
// 支持空格分隔的多字段，字段前缀 - 表示倒序。
func (qb *QueryBuilder) Sort() *QueryBuilder {
	sortParam := strings.TrimSpace(qb.params["sort"])
	if sortParam == "" {
		sortParam = "-createdAt"
	}
	for _, field := range strings.Fields(sortParam) {
		desc := strings.HasPrefix(field, "-")
		name := camelToSnake(strings.TrimPrefix(field, "-"))
		if !columnNamePattern.MatchString(name) {
			continue
		}
		if desc {
			name += " desc"
		}
		qb.query = qb.query.Order(name)
	}
	return qb
}

// Fields 应用字段投影（逗号分隔）。
func (qb *QueryBuilder) Fields() *QueryBuilder {
	fieldsParam := strings.TrimSpace(qb.params["fields"])
	if fieldsParam == "" {
		return qb
	}
	columns := make([]string, 0)
	for _, field := range strings.Split(fieldsParam, ",") {
		name := camelToSnake(strings.TrimSpace(field))
		if !columnNamePattern.MatchString(name) {
			continue
		}
		columns = append(columns, name)
	}
	if len(columns) > 0 {
		qb.query = qb.query.Select(columns)
	}
	return qb
}

// Paginate 应用分页，页码与单页容量最小为 1，缺省 1/10。
func (qb *QueryBuilder) Paginate() *QueryBuilder {
	page, limit := qb.pageAndLimit()
	qb.query = qb.query.Offset((page - 1) * limit).Limit(limit)
	return qb
}

// Find 执行数据查询。
func (qb *QueryBuilder) Find(dest interface{}) error {
	return qb.query.Find(dest).Error
}

// Meta 统计未分页的命中总数并返回分页元信息。
// 页码与单页容量直接取自查询参数，不依赖是否调用过 Paginate。
func (qb *QueryBuilder) Meta() (PageMeta, error) {
	var total int64
	if err := qb.countQuery.Count(&total).Error; err != nil {
		return PageMeta{}, err
	}
	page, limit := qb.pageAndLimit()
	totalPage := int((total + int64(limit) - 1) / int64(limit))
	return PageMeta{
		Page:      page,
		Limit:     limit,
		Total:     total,
		TotalPage: totalPage,
	}, nil
}

func (qb *QueryBuilder) pageAndLimit() (int, int) {
	page := parsePositiveInt(qb.params["page"], defaultPage)
	limit := parsePositiveInt(qb.params["limit"], defaultLimit)
	return page, limit
}

// camelToSnake 将 camelCase 参数键转换为 snake_case 列名。
func camelToSnake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r - 'A' + 'a')
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// parseNumeric 判断是否为非空数字字符串并返回数值。
func parseNumeric(value string) (float64, bool) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0, false
	}
	number, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, false
	}
	return number, true
}

func parsePositiveInt(value string, fallback int) int {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	if parsed < 1 {
		return 1
	}
	return parsed
}
