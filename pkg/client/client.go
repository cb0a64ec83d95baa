package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"github.com/packagewjx/kmeans-visualizer/pkg/core"
	"github.com/packagewjx/kmeans-visualizer/pkg/server"
	"github.com/pkg/errors"
	"io/ioutil"
	"net/http"
	"strings"
)

const defaultApiHostBaseUrl = "http://localhost:2000"

// baseUrl为空时使用默认地址
func NewApiClient(baseUrl string) server.API {
	if baseUrl == "" {
		baseUrl = defaultApiHostBaseUrl
	}
	return &apiClient{
		baseUrl: strings.TrimSuffix(baseUrl, "/"),
		client:  http.DefaultClient,
	}
}

var _ server.API = &apiClient{}

type apiClient struct {
	baseUrl string
	client  *http.Client
}

func (a *apiClient) State() (*server.State, error) {
	dest := &server.State{}
	if err := a.do(http.MethodGet, "/state", nil, dest); err != nil {
		return nil, err
	}
	return dest, nil
}

func (a *apiClient) NewDataset() (*server.State, error) {
	dest := &server.State{}
	if err := a.do(http.MethodPost, "/dataset", nil, dest); err != nil {
		return nil, err
	}
	return dest, nil
}

func (a *apiClient) Reset() (*server.State, error) {
	dest := &server.State{}
	if err := a.do(http.MethodPost, "/reset", nil, dest); err != nil {
		return nil, err
	}
	return dest, nil
}

func (a *apiClient) Configure(request *server.ConfigRequest) (*server.State, error) {
	dest := &server.State{}
	if err := a.do(http.MethodPost, "/config", request, dest); err != nil {
		return nil, err
	}
	return dest, nil
}

func (a *apiClient) AddManualCentroid(point core.Point) (*server.ManualCentroidResult, error) {
	dest := &server.ManualCentroidResult{}
	if err := a.do(http.MethodPost, "/centroids", &point, dest); err != nil {
		return nil, err
	}
	return dest, nil
}

func (a *apiClient) Step() (*server.StepResult, error) {
	dest := &server.StepResult{}
	if err := a.do(http.MethodPost, "/step", nil, dest); err != nil {
		return nil, err
	}
	return dest, nil
}

func (a *apiClient) Converge() (*server.ConvergeResult, error) {
	dest := &server.ConvergeResult{}
	if err := a.do(http.MethodPost, "/converge", nil, dest); err != nil {
		return nil, err
	}
	return dest, nil
}

func (a *apiClient) do(method, path string, body interface{}, dest interface{}) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "序列化请求出错")
		}
	}

	request, err := http.NewRequest(method, a.baseUrl+path, bytes.NewReader(payload))
	if err != nil {
		return errors.Wrap(err, "创建请求出错")
	}
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}

	response, err := a.client.Do(request)
	if err != nil {
		return errors.Wrap(err, "请求时出现异常")
	}
	defer func() {
		_ = response.Body.Close()
	}()

	data, err := ioutil.ReadAll(response.Body)
	if err != nil {
		return errors.Wrap(err, "读取时出现异常")
	}

	if response.StatusCode != http.StatusOK {
		return responseError(response.StatusCode, data)
	}

	err = json.Unmarshal(data, dest)
	if err != nil {
		return errors.Wrap(err, fmt.Sprintf("解析json异常，json为\n%s", string(data)))
	}
	return nil
}

func responseError(status int, data []byte) error {
	message := strings.TrimSpace(string(data))
	errResp := &server.ErrorResponse{}
	if json.Unmarshal(data, errResp) == nil && errResp.Error != "" {
		message = errResp.Error
	}

	switch status {
	case http.StatusBadRequest:
		return errors.Wrap(server.ErrBadRequest, message)
	case http.StatusConflict:
		return errors.Wrap(server.ErrConflict, message)
	default:
		return fmt.Errorf("服务器返回%d：%s", status, message)
	}
}
