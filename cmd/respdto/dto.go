package main

// UserDTO is the payload of a single-user response.
type UserDTO struct {
	Name string `json:"name" yaml:"name" toml:"name"`
	Age  int    `json:"age" yaml:"age" toml:"age"`
}

// PaginatedUsersDTO is the payload of a user listing.
type PaginatedUsersDTO struct {
	Users []UserDTO `json:"users" yaml:"users" toml:"users"`
}

func samplePaginatedUsers() *PaginatedUsersDTO {
	return &PaginatedUsersDTO{
		Users: []UserDTO{
			{Name: "Ben", Age: 10},
			{Name: "Gwen", Age: 10},
		},
	}
}
