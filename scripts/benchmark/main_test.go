package main

import "testing"

func TestBenchConfigValidate(t *testing.T) {
	ok := benchConfig{Images: 10, Width: 64, Height: 32, Workers: 2}
	if err := ok.validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*benchConfig)
	}{
		{"zero workers", func(c *benchConfig) { c.Workers = 0 }},
		{"negative workers", func(c *benchConfig) { c.Workers = -4 }},
		{"zero images", func(c *benchConfig) { c.Images = 0 }},
		{"zero width", func(c *benchConfig) { c.Width = 0 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := ok
			tc.mutate(&c)
			if err := c.validate(); err == nil {
				t.Error("validate succeeded")
			}
		})
	}
}

func TestCreateDummyImage(t *testing.T) {
	data, err := createDummyImage(40, 20)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) < 2 || data[0] != 0xFF || data[1] != 0xD8 {
		t.Error("not a JPEG stream")
	}
}
