package conf

type Bootstrap struct {
	Server *Server
	Data   *Data
	LLM    *LLM
}

type Server struct {
	Http *HTTP
}

type HTTP struct {
	Addr    string
	Timeout string
}

type Data struct {
	Database *Database
}

type Database struct {
	Driver string
	Source string
}

// LLM 叙事服务所用模型与限流配置
type LLM struct {
	BaseUrl string `json:"base_url"`
	ApiKey  string `json:"api_key"`
	Model   string `json:"model"`
	Qps     int32  `json:"qps"`
	Rpm     int32  `json:"rpm"`
}
