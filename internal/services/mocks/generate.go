package mocks

//go:generate go run github.com/golang/mock/mockgen -destination=mock_activity_log_repository.go -package=mocks github.com/tutoro/services-feed/internal/services ActivityLogRepository
//go:generate go run github.com/golang/mock/mockgen -destination=mock_payment_log_repository.go -package=mocks github.com/tutoro/services-feed/internal/services PaymentLogRepository
//go:generate go run github.com/golang/mock/mockgen -destination=mock_notification_log_repository.go -package=mocks github.com/tutoro/services-feed/internal/services NotificationLogRepository
//go:generate go run github.com/golang/mock/mockgen -destination=mock_directory_repository.go -package=mocks github.com/tutoro/services-feed/internal/services DirectoryRepository
//go:generate go run github.com/golang/mock/mockgen -destination=mock_inbox_repository.go -package=mocks github.com/tutoro/services-feed/internal/services InboxRepository
