//go:generate mockgen -source=../consumer.go   -destination=./mock_consumer.go   -package=mocks
//go:generate mockgen -source=../records.go    -destination=./mock_records.go    -package=mocks
//go:generate mockgen -source=../unit_store.go -destination=./mock_unit_store.go -package=mocks
//go:generate mockgen -source=../logger.go     -destination=./mock_logger.go     -package=mocks
//go:generate mockgen -source=../message_consumer.go -destination=./mock_message_consumer.go -package=mocks

package mocks
