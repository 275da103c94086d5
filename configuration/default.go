package configuration

func Default() Configuration {
	return Configuration{
		HttpAddr:          "127.0.0.1:8080",
		ShowBanner:        true,
		ShowConfig:        false,
		AccessLog:         true,
		EnableCompression: true,
		MultiSelect:       true,
	}
}
