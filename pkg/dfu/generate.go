package dfu

//go:generate mockgen -destination=mocks/mock_transport.go -package=mocks github.com/kairyu/flop/pkg/dfu Transport
