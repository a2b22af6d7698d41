package edep

type Configuration struct {
	MaxEvents        int     `koanf:"max_events"`
	Skip             int     `koanf:"skip"`
	Verbosity        int     `koanf:"verbosity"`
	FileIn           string  `koanf:"file_in"`
	FileOut          string  `koanf:"file_out"`
	FileOutRoot      string  `koanf:"file_out_root"`
	EvGen            string  `koanf:"evgen"`
	Seed             uint64  `koanf:"seed"`
	NoDB             bool    `koanf:"no_db"`
	Host             string  `koanf:"host"`
	User             string  `koanf:"user"`
	Passwd           string  `koanf:"pass"`
	DBName           string  `koanf:"dbname"`
	DBFile           string  `koanf:"db_file"`
	RunNumber        int     `koanf:"run_number"`
	Discard          bool    `koanf:"discard"`
	WriteData        bool    `koanf:"write_data"`
	WriteRoot        bool    `koanf:"write_root"`
	CompressionLevel int     `koanf:"compression_level"`
	Histograms       bool    `koanf:"histograms"`
	DQdxThreshold    float64 `koanf:"dqdx_threshold"`
	PCEHistogramFile string  `koanf:"pce_histogram_file"`
	PCEHistogramName string  `koanf:"pce_histogram_name"`
}

var configuration Configuration

func GetConfiguration() Configuration {
	return configuration
}

func SetConfiguration(config Configuration) {
	configuration = config
}
