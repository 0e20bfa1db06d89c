package config

import (
	"github.com/limaJavier/coursepicker/pkg/model"
	"github.com/limaJavier/coursepicker/pkg/picker"
	"github.com/samber/lo"
)

// BlockedConfig is a recurring period no section may conflict with, written the way the catalog writes meetings.
type BlockedConfig struct {
	Name  string `json:"name"`
	Days  string `json:"days"`  // Like "MoTuWeThFr"
	Times string `json:"times"` // Like "11:00AM - 12:00PM"
}

func (c BlockedConfig) Validate() error {
	_, err := model.ParseMeetingTime(c.Days, c.Times)
	return err
}

// BlockedTime converts the period into a criterion
func (c BlockedConfig) BlockedTime() (picker.BlockedTime, error) {
	meetingTime, err := model.ParseMeetingTime(c.Days, c.Times)
	if err != nil {
		return picker.BlockedTime{}, err
	}
	name := lo.Ternary(c.Name != "", c.Name, c.Days+" "+c.Times)
	return picker.BlockedTime{Name: name, MeetingTime: meetingTime}, nil
}

// BlockedTimes converts every blocked period of the configuration into a criterion
func (c Config) BlockedTimes() ([]picker.BlockedTime, error) {
	blockedTimes := make([]picker.BlockedTime, 0, len(c.Blocked))
	for _, blocked := range c.Blocked {
		blockedTime, err := blocked.BlockedTime()
		if err != nil {
			return nil, err
		}
		blockedTimes = append(blockedTimes, blockedTime)
	}
	return blockedTimes, nil
}
