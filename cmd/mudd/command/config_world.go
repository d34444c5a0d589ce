package command

import (
	"fmt"

	"github.com/pixil98/go-errors"
)

const defaultCarryLimit = 10

type WorldConfig struct {
	DefaultRoom string `json:"default_room"`
	CarryLimit  int    `json:"carry_limit,omitempty"`
}

func (w *WorldConfig) validate() error {
	el := errors.NewErrorList()

	if w.DefaultRoom == "" {
		el.Add(fmt.Errorf("default_room is required"))
	}
	if w.CarryLimit < 0 {
		el.Add(fmt.Errorf("carry_limit must not be negative"))
	}

	return el.Err()
}

func (w *WorldConfig) carryLimit() int {
	if w.CarryLimit == 0 {
		return defaultCarryLimit
	}
	return w.CarryLimit
}
