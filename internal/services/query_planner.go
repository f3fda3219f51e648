package services

import "github.com/tutoro/services-feed/internal/models/vo"

// 每个来源的超额拉取参数：合并、过滤与去重都会损耗候选行，
// 固定倍率让一页结果大概率无需二次往返即可凑齐。
const (
	overFetchMultiplier = 6
	overFetchCap        = 300
)

// QueryPlan 描述一次请求需要触达哪些来源日志。
type QueryPlan struct {
	QueryActivity     bool
	QueryPayment      bool
	QueryNotification bool
	// ActivityCategories 是下推给 Activity 日志的分类子集，空表示全部。
	ActivityCategories []vo.Category
	PerSourceLimit     int
}

// PlanFanOut 根据请求的分类集合决定扇出范围。
// 空集合表示三个来源全查；PAYMENT 与 NOTIFICATION 各自独占一个来源，
// 集合非空且未包含时对应来源整个跳过。
func PlanFanOut(categories []vo.Category, pageSize int) QueryPlan {
	limit := pageSize * overFetchMultiplier
	if limit > overFetchCap {
		limit = overFetchCap
	}
	plan := QueryPlan{PerSourceLimit: limit}
	if len(categories) == 0 {
		plan.QueryActivity = true
		plan.QueryPayment = true
		plan.QueryNotification = true
		return plan
	}
	for _, category := range categories {
		switch {
		case category == vo.CategoryPayment:
			plan.QueryPayment = true
		case category == vo.CategoryNotification:
			plan.QueryNotification = true
		case category.IsActivitySubject():
			plan.ActivityCategories = append(plan.ActivityCategories, category)
		}
	}
	plan.QueryActivity = len(plan.ActivityCategories) > 0
	return plan
}
