package http

import (
	"net/http"

	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

func loginPage(r *http.Request, email, errMsg string) Node {
	return Doctype(HTML(
		Lang("en"),
		documentHead("Sign in"),
		Body(
			Main(Class("login-wrap card"),
				H1(Text("IAM Admin Console")),
				P(Text("Sign in to your account")),
				If(errMsg != "", Div(Class("error"), Role("alert"), Text(errMsg))),
				Form(Method("post"), Action("/login"),
					csrfField(r),
					Label(For("email"), Text("Email address")),
					Input(ID("email"), Type("email"), Name("email"), Value(email), AutoComplete("email"), Required()),
					Label(For("password"), Text("Password")),
					Input(ID("password"), Type("password"), Name("password"), AutoComplete("current-password"), Required()),
					Button(Type("submit"), Text("Sign in")),
				),
			),
		),
	))
}
