package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/meverselabs/farms/service/apiserver"
)

// DoRequest calls the method of the node and returns its result
func DoRequest(hostURL string, Method string, Params []interface{}) (interface{}, error) {
	req := &apiserver.JRPCRequest{
		JSONRPC: "2.0",
		ID:      uuid.NewString(),
		Method:  Method,
		Params:  Params,
	}
	bs, err := json.Marshal(req)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	r, err := http.Post(hostURL+"/api/endpoints/http", "application/json", bytes.NewReader(bs))
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer r.Body.Close()

	var res apiserver.JRPCResponse
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(&res); err != nil {
		return nil, errors.WithStack(err)
	}
	if res.Error != nil {
		return nil, errors.New(fmt.Sprint(res.Error))
	}
	return res.Result, nil
}

func printResult(res interface{}) {
	switch res.(type) {
	case nil:
		fmt.Println("ok")
	case map[string]interface{}, []interface{}:
		bs, err := json.MarshalIndent(res, "", "\t")
		if err != nil {
			fmt.Println("error :", err)
			return
		}
		fmt.Println(string(bs))
	default:
		fmt.Println(res)
	}
}

// call requests the method and prints the result
func (cfg *cliConfig) call(Method string, Params ...interface{}) error {
	res, err := DoRequest(cfg.hostURL, Method, Params)
	if err != nil {
		return err
	}
	printResult(res)
	return nil
}

// callAmount requests the method and prints the result as an amount
func (cfg *cliConfig) callAmount(Method string, Params ...interface{}) error {
	res, err := DoRequest(cfg.hostURL, Method, Params)
	if err != nil {
		return err
	}
	str, err := formatAmount(fmt.Sprint(res), cfg.decimals)
	if err != nil {
		return err
	}
	fmt.Println(str)
	return nil
}

func (cfg *cliConfig) caller() (string, error) {
	if len(cfg.from) == 0 {
		return "", errors.New("--from is required")
	}
	return cfg.from, nil
}
