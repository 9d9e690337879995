// Package mocks provides mock implementations for testing purposes.
package mocks

//go:generate mockgen -destination=mock_directory.go -package=mocks github.com/Rea1521/mahlangu-capital-bank/internal/ports/gateway/directory AccountDirectory
//go:generate mockgen -destination=mock_execution.go -package=mocks github.com/Rea1521/mahlangu-capital-bank/internal/ports/gateway/execution TransferExecutor
//go:generate mockgen -destination=mock_notify.go -package=mocks github.com/Rea1521/mahlangu-capital-bank/internal/ports/gateway/notify Notifier
//go:generate mockgen -destination=mock_platform.go -package=mocks github.com/Rea1521/mahlangu-capital-bank/internal/ports/gateway/platform Clock,IDGenerator,Scheduler,Timer
