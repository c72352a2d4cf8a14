package envelope_test

import (
	"encoding/json"
	"fmt"

	"respdto/pkg/envelope"
)

type UserDTO struct {
	Name string `json:"name"`
	Age  int    `json:"age"`
}

type PaginatedUsersDTO struct {
	Users []UserDTO `json:"users"`
}

func Example() {
	out := envelope.For(UserDTO{Name: "Ben", Age: 10}).
		Message("Fetched user").
		ToMap()

	b, _ := json.Marshal(out)
	fmt.Println(string(b))
	// Output:
	// {"data":{"age":10,"message":"Fetched user","name":"Ben","status":200,"success":true},"message":"Fetched user","status":200,"success":true}
}

func ExampleBuilder_Add() {
	users := &PaginatedUsersDTO{Users: []UserDTO{{"Ben", 10}, {"Gwen", 10}}}

	out := envelope.For(users).
		Status(200).
		Message("Fetched users").
		Action("get users").
		Add("id", 123).
		Metadata(map[string]any{"total": 300, "page": 10, "length": 30}).
		ToMap()

	fmt.Println(out["status"], out["success"], out["message"], out["action"], out["id"])
	fmt.Println(out["metadata"])
	// Output:
	// 200 true Fetched users get users 123
	// map[length:30 page:10 total:300]
}

func ExampleCallback() {
	b := envelope.New().Status(404).Message("not found")

	line := envelope.Callback(b, func(m map[string]any) string {
		return fmt.Sprintf("%v %v: %v", m["status"], m["success"], m["message"])
	})
	fmt.Println(line)
	// Output: 404 false: not found
}
