// Package services 实现 Feed 聚合的业务用例。
// 该层不做 I/O 之外的副作用，排序、去重与扇出计划都是纯函数。
package services
