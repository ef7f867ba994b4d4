package selfplay

import (
	"io"
	"time"

	"github.com/bytedance/sonic"
)

type Summary struct {
	Cmdline []string
	Player1 string
	Player2 string
	Limit   time.Duration
	Stats   *Stats
}

func WriteSummary(w io.Writer, s *Summary) error {
	bs, err := sonic.ConfigStd.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	_, err = w.Write(append(bs, '\n'))
	return err
}

func ReadSummary(r io.Reader) (*Summary, error) {
	bs, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var s Summary
	if err := sonic.Unmarshal(bs, &s); err != nil {
		return nil, err
	}
	return &s, nil
}
