package service

// DemoContacts is the address book a fresh board starts with.
var DemoContacts = []ContactInput{
	{Name: "Anton Mayer", Email: "antom@gmail.com", Phone: "+49 1111 111 11 1"},
	{Name: "Anja Schulz", Email: "schulz@hotmail.com", Phone: "+49 2222 222 22 2"},
	{Name: "Benedikt Ziegler", Email: "benedikt@gmail.com", Phone: "+49 3333 333 33 3"},
	{Name: "David Eisenberg", Email: "davidberg@gmail.com", Phone: "+49 4444 444 44 4"},
	{Name: "Eva Fischer", Email: "eva@gmail.com", Phone: "+49 5555 555 55 5"},
	{Name: "Emmanuel Mauer", Email: "emmanuelma@gmail.com", Phone: "+49 6666 666 66 6"},
	{Name: "Marcel Bauer", Email: "bauer@gmail.com", Phone: "+49 7777 777 77 7"},
	{Name: "Tatjana Wolf", Email: "wolf@gmail.com", Phone: "+49 8888 888 88 8"},
}
