package config

type yamlConfig struct {
	NSTimes struct {
		API struct {
			BaseURL string `yaml:"base_url"`
			Token   string `yaml:"token"`
			Timeout string `yaml:"timeout"`
		} `yaml:"api"`

		Resolver string `yaml:"resolver"`

		Stations struct {
			File string `yaml:"file"`
		} `yaml:"stations"`

		Cache struct {
			Path string `yaml:"path"`
		} `yaml:"cache"`

		Server struct {
			Addr string `yaml:"addr"`
		} `yaml:"server"`

		Log struct {
			Dir   string `yaml:"dir"`
			Debug *bool  `yaml:"debug"`
		} `yaml:"log"`
	} `yaml:"nstimes"`
}
