//go:build !linux

package wireguard

import (
	"errors"
	"log/slog"
)

func newNativeBackend(_ *slog.Logger) (AddressQuerier, StateReporter, error) {
	return nil, nil, errors.New("wireguard: native backend is only supported on linux")
}
