package device

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/aaronwong1989/goptp/comm/logging"
)

const ConfPathEnv = "PTP_DEVICE_CONF_PATH"

type Config struct {
	// 设备信息
	Manufacturer        string   `yaml:"manufacturer"          toml:"manufacturer"`
	Model               string   `yaml:"model"                 toml:"model"`
	DeviceVersion       string   `yaml:"device-version"        toml:"device-version"`
	SerialNumber        string   `yaml:"serial-number"         toml:"serial-number"`
	VendorExtensionID   uint32   `yaml:"vendor-extension-id"   toml:"vendor-extension-id"`
	VendorExtensionDesc string   `yaml:"vendor-extension-desc" toml:"vendor-extension-desc"`
	StorageIds          []uint32 `yaml:"storage-ids"           toml:"storage-ids"`
	ChdkMajor           uint32   `yaml:"chdk-major"            toml:"chdk-major"`
	ChdkMinor           uint32   `yaml:"chdk-minor"            toml:"chdk-minor"`

	// 服务相关
	MaxCons            int           `yaml:"max-cons"             toml:"max-cons"`
	MaxContainerLength uint32        `yaml:"max-container-length" toml:"max-container-length"`
	MaxPoolSize        int           `yaml:"max-pool-size"        toml:"max-pool-size"`
	TickDuration       time.Duration `yaml:"tick-duration"        toml:"tick-duration"`

	// 模拟设备响应耗时
	MinRespMs int32 `yaml:"min-resp-ms" toml:"min-resp-ms"`
	MaxRespMs int32 `yaml:"max-resp-ms" toml:"max-resp-ms"`

	Log logging.Config `yaml:"log" toml:"log"`
}

func DefaultConfig() *Config {
	return &Config{
		Manufacturer:       "Canon Inc.",
		Model:              "Canon PowerShot A720 IS",
		DeviceVersion:      "1-6.0.1.0",
		SerialNumber:       "0123456789ABCDEF",
		StorageIds:         []uint32{0x00010001},
		ChdkMajor:          2,
		ChdkMinor:          6,
		MaxCons:            16,
		MaxContainerLength: 1 << 20,
		MaxPoolSize:        256,
		TickDuration:       time.Minute,
	}
}

// LoadConfig 读取配置文件，path 为空时读取环境变量 PTP_DEVICE_CONF_PATH，
// 仍为空则使用默认配置。.toml 后缀按 TOML 解析，其余按 YAML 解析。
func LoadConfig(path string) (*Config, error) {
	conf := DefaultConfig()
	if path == "" {
		path = os.Getenv(ConfPathEnv)
	}
	if path == "" {
		return conf, nil
	}

	bts, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read config %s", path)
	}
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		_, err = toml.Decode(string(bts), conf)
	} else {
		err = yaml.Unmarshal(bts, conf)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "parse config %s", path)
	}
	if err = conf.Validate(); err != nil {
		return nil, err
	}
	return conf, nil
}

func (conf *Config) Validate() error {
	if conf.MaxCons <= 0 {
		return errors.Errorf("max-cons must be positive, got %d", conf.MaxCons)
	}
	if conf.MaxPoolSize <= 0 {
		return errors.Errorf("max-pool-size must be positive, got %d", conf.MaxPoolSize)
	}
	if conf.MaxContainerLength < 12 {
		return errors.Errorf("max-container-length %d below header length", conf.MaxContainerLength)
	}
	if conf.MaxRespMs < conf.MinRespMs {
		return errors.Errorf("max-resp-ms %d below min-resp-ms %d", conf.MaxRespMs, conf.MinRespMs)
	}
	return nil
}
