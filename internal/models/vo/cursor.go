package vo

import (
	"encoding/base64"
	"encoding/json"
	"time"
)

// Cursor 表示上一页最后一条条目的复合排序键。
type Cursor struct {
	OccurredAt time.Time
	SourceKind SourceKind
	SourceID   int64
}

type cursorPayload struct {
	OccurredAt string `json:"o"`
	SourceKind string `json:"k"`
	SourceID   int64  `json:"i"`
}

// CursorFromItem 基于条目构造下一页游标。
func CursorFromItem(item FeedItem) Cursor {
	return Cursor{
		OccurredAt: item.OccurredAt,
		SourceKind: item.SourceKind,
		SourceID:   item.SourceID,
	}
}

// Encode 将游标序列化为可放入查询参数的不透明 token。
func (c Cursor) Encode() string {
	payload := cursorPayload{
		OccurredAt: c.OccurredAt.UTC().Format(time.RFC3339Nano),
		SourceKind: string(c.SourceKind),
		SourceID:   c.SourceID,
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return ""
	}
	return base64.RawURLEncoding.EncodeToString(raw)
}

// DecodeCursor 解析 token 并做结构校验。token 属于不可信输入，
// 任何一步失败都按"无游标"处理，调用方从流的开头重新读取。
func DecodeCursor(token string) (Cursor, bool) {
	if token == "" {
		return Cursor{}, false
	}
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return Cursor{}, false
	}
	var payload cursorPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return Cursor{}, false
	}
	occurredAt, err := time.Parse(time.RFC3339Nano, payload.OccurredAt)
	if err != nil {
		return Cursor{}, false
	}
	kind := SourceKind(payload.SourceKind)
	if !kind.Valid() {
		return Cursor{}, false
	}
	return Cursor{
		OccurredAt: occurredAt,
		SourceKind: kind,
		SourceID:   payload.SourceID,
	}, true
}
