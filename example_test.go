package kalle_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"

	"github.com/858277721c/Kalle"
	"github.com/858277721c/Kalle/request"
)

func ExampleClient_Do() {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		fmt.Fprintf(w, `{"msg":"hello %s"}`, r.PostForm.Get("name"))
	}))
	defer ts.Close()

	c, err := kalle.New()
	if err != nil {
		fmt.Println("build error:", err)
		return
	}

	b, err := request.NewBuilder(nil, request.MethodPost, ts.URL)
	if err != nil {
		fmt.Println("builder error:", err)
		return
	}

	req, err := b.AddPath("greet").PutString("name", "kalle").Build()
	if err != nil {
		fmt.Println("request error:", err)
		return
	}

	var resp struct{ Msg string }
	if err := c.Do(context.Background(), req, http.StatusOK, kalle.WithDestination(&resp)); err != nil {
		fmt.Println("do error:", err)
		return
	}

	fmt.Println(resp.Msg)
	// Output: hello kalle
}
